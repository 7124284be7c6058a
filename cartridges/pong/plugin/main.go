// Command plugin builds the pong cartridge as a Go plugin:
//
//	go build -buildmode=plugin -o pong.so ./cartridges/pong/plugin
//	avkrun pong.so
package main

import (
	"log"

	"github.com/FabianRolfMatthiasNoll/avkconsole/cartridges/pong"
	"github.com/FabianRolfMatthiasNoll/avkconsole/pkg/avk"
)

// Host-call slots, filled by the runner before MAIN.
var (
	INIT      avk.InitFunc
	DROP      avk.DropFunc
	UPDATE    avk.UpdateFunc
	GET_TIME  avk.TimeFunc
	GET_INPUT avk.InputFunc
)

var TITLE = pong.Title

func MAIN() {
	err := pong.Run(avk.Slots{
		Init:     INIT,
		Drop:     DROP,
		Update:   UPDATE,
		GetTime:  GET_TIME,
		GetInput: GET_INPUT,
	})
	if err != nil {
		log.Printf("pong: %v", err)
	}
}

func main() {}
