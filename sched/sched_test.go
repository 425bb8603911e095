package sched

import "testing"

type stepClock struct{ now uint32 }

func (c *stepClock) NowMs() uint32 { return c.now }

func TestIntervalGating(t *testing.T) {
	clk := &stepClock{}
	l := NewLoop(clk)

	var runs []uint32
	l.Every("poll", 500, func(now uint32) { runs = append(runs, now) })

	for clk.now = 100; clk.now <= 1600; clk.now += 100 {
		l.Tick()
	}
	want := []uint32{500, 1000, 1500}
	if len(runs) != len(want) {
		t.Fatalf("runs = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("runs = %v, want %v", runs, want)
		}
	}
}

func TestIntervalGatingAcrossWraparound(t *testing.T) {
	clk := &stepClock{now: 0xFFFFFF00} // 256 ms before wrap
	l := NewLoop(clk)

	count := 0
	l.Every("poll", 500, func(uint32) { count++ })

	for i := 0; i < 16; i++ { // crosses zero at i=2
		clk.now += 100
		l.Tick()
	}
	// due at +500 (0xFFFFFF00+500 wraps to 0xF4) and +1000 and +1500
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestEachPassRunsEveryTick(t *testing.T) {
	clk := &stepClock{}
	l := NewLoop(clk)
	count := 0
	l.EachPass(func() { count++ })
	for i := 0; i < 5; i++ {
		clk.now += 1
		l.Tick()
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
}

func TestTasksShareOnePass(t *testing.T) {
	clk := &stepClock{}
	l := NewLoop(clk)
	var order []string
	l.Every("a", 100, func(uint32) { order = append(order, "a") })
	l.Every("b", 100, func(uint32) { order = append(order, "b") })
	clk.now = 100
	l.Tick()
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}
}

func TestZeroIntervalCoerced(t *testing.T) {
	clk := &stepClock{}
	l := NewLoop(clk)
	count := 0
	l.Every("tight", 0, func(uint32) { count++ })
	clk.now = 1
	l.Tick()
	clk.now = 2
	l.Tick()
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
