package main

import (
	"fmt"
	"io"
	"os"

	"github.com/karlmutch/errors"
)

var (
	msgV io.Writer = os.Stdout
)

func msgWatch(msgsC <-chan string, errorC <-chan errors.Error, quitC <-chan struct{}) {
	for {
		select {
		case msg := <-msgsC:
			if msgV != nil {
				fmt.Fprint(msgV, msg)
			}
		case err := <-errorC:
			if msgV != nil {
				fmt.Fprintln(msgV, err.Error())
				continue
			}
			logger.Warn(err.Error())
		case <-quitC:
			return
		}
	}
}
