package config

// Embedded boot documents, keyed by board ID. Populated manually during
// development; a build step may generate this file instead.

const cfgLPC54628EVK = `{
  "pins": {
    "version": 1,
    "pins": [
      {"id": "LED1", "mode": "out", "value": true},
      {"id": "LED2", "mode": "out", "value": false},
      {"id": "LED3", "mode": "out", "value": false},
      {"id": "SW3", "mode": "in", "pull": "up"},
      {"id": "SDA", "mode": "alt_open_drain", "af": 1},
      {"id": "SCL", "mode": "alt_open_drain", "af": 1}
    ]
  }
}`

var embeddedConfigs = map[string][]byte{
	"lpc54628evk": []byte(cfgLPC54628EVK),
}
