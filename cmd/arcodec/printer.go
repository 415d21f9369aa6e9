/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bufio"
	"sync"
)

var mutex sync.Mutex

// Printer is a buffered, concurrency-safe (order-wise) line printer.
type Printer struct {
	os *bufio.Writer
}

// Println writes msg followed by a newline if printFlag is true.
func (p *Printer) Println(msg string, printFlag bool) {
	if !printFlag {
		return
	}

	mutex.Lock()
	defer mutex.Unlock()

	if w, _ := p.os.Write([]byte(msg + "\n")); w > 0 {
		_ = p.os.Flush()
	}
}
