package config

// Embedded per-node configuration. Key: node ID (the value placed in ctx
// under CtxNodeKey). Val: raw JSON for that node.

const cfgCoordinator = `{
  "heartbeat": {
      "interval": 5
  },
  "link": {
      "poll_every_ms": 500,
      "net_check_every_ms": 10000
  },
  "audio": {
      "greeting_track": 1
  },
  "web": {
      "addr": ":80"
  }
}`

const cfgPeripheral = `{
  "heartbeat": {
      "interval": 5
  },
  "sampling": {
      "card_every_ms": 200,
      "env_every_ms": 2500
  }
}`

var embeddedConfigs = map[string][]byte{
	"coordinator": []byte(cfgCoordinator),
	"peripheral":  []byte(cfgPeripheral),
}
