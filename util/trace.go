package util

import (
	"log"
	"time"
)

// Trace 计时辅助，用法：defer util.Trace("xxx")()
func Trace(msg string) func() {
	start := time.Now()
	return func() {
		log.Printf("%s took %v", msg, time.Since(start))
	}
}
