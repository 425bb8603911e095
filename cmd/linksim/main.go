// Command linksim runs both nodes of the two-wire link in one process: the
// peripheral with simulated sensors, the coordinator with its web surface,
// joined by an in-memory bus. Useful for demos and for exercising the link
// state machine with scripted unplugs.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nodelink-go/bus"
	"nodelink-go/coordinator"
	"nodelink-go/peripheral"
	"nodelink-go/sched"
	"nodelink-go/services/config"
	"nodelink-go/services/heartbeat"
	"nodelink-go/services/web"
	"nodelink-go/twi"
)

func main() {
	cfgPath := flag.String("config", "", "path to simulator YAML config")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		println("[main] config:", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	link := twi.NewMemLink()

	// Peripheral side.
	cards, err := newSimCards(cfg.Peripheral.Cards, uint32(cfg.Peripheral.CardHoldSec)*1000)
	if err != nil {
		println("[main]", err.Error())
		os.Exit(1)
	}
	player, err := openPlayer(cfg.Peripheral.AudioPort)
	if err != nil {
		println("[main] audio port:", err.Error())
		os.Exit(1)
	}
	pNode := peripheral.NewNode(cards, newSimEnv(), player)
	go pNode.ServePort(ctx, link)

	pLoop := sched.NewLoop(sched.WallClock)
	pNode.Register(pLoop, peripheral.Config{
		CardEveryMs: cfg.Peripheral.CardEveryMs,
		EnvEveryMs:  cfg.Peripheral.EnvEveryMs,
	})
	go func() { _ = pLoop.Run(ctx) }()

	// Coordinator side.
	b := bus.NewBus(8)
	svcCtx := context.WithValue(ctx, config.CtxNodeKey, "coordinator")
	config.NewConfigService().Start(svcCtx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(svcCtx, b.NewConnection("heartbeat"))

	cNode := coordinator.NewNode(link, nil, simNet{}, b.NewConnection("link"))
	cCfg := coordinator.DefaultConfig()
	cCfg.PollEveryMs = cfg.Coordinator.PollEveryMs
	cLoop := sched.NewLoop(sched.WallClock)
	cNode.Register(cLoop, cCfg)
	go func() { _ = cLoop.Run(ctx) }()

	// Web surface.
	svc := web.New(cNode)
	svc.Restart = func() {
		println("[main] restart requested; resetting link state")
		link.SetConnected(false)
		time.Sleep(time.Second)
		link.SetConnected(true)
	}
	if err := svc.Start(ctx, cfg.Web.Addr); err != nil {
		println("[main] web:", err.Error())
		os.Exit(1)
	}

	// Scripted unplugs.
	if cfg.Link.FlapEverySec > 0 {
		go func() {
			tick := time.NewTicker(time.Duration(cfg.Link.FlapEverySec) * time.Second)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-tick.C:
					println("[main] unplugging link")
					link.SetConnected(false)
					time.Sleep(time.Second)
					link.SetConnected(true)
					println("[main] link replugged")
				}
			}
		}()
	}

	<-ctx.Done()
	println("[main] shutting down")
}
