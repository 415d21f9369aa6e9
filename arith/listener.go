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

package arith

import "time"

// Event types reported to Listeners. Purely informational: nothing in the
// package depends on a Listener being present.
const (
	EvtSymbolEncoded = iota
	EvtSymbolDecoded
	EvtFinalized
)

// Event describes a single codec occurrence, in the shape of the teacher's
// root-level Event/Listener pair.
type Event struct {
	eventType int
	symbol    int64
	eventTime time.Time
}

// Type returns the event type (one of the Evt* constants).
func (e *Event) Type() int { return e.eventType }

// Symbol returns the symbol associated with the event. Meaningless for
// EvtFinalized.
func (e *Event) Symbol() int64 { return e.symbol }

// Time returns when the event was recorded.
func (e *Event) Time() time.Time { return e.eventTime }

// Listener is implemented by event processors that want to observe an
// Encoder or Decoder's progress (e.g. for logging or metrics), without the
// codec itself taking any dependency on how those observations are used.
type Listener interface {
	ProcessEvent(evt *Event)
}

func newEvent(evtType int, symbol int64) *Event {
	return &Event{eventType: evtType, symbol: symbol, eventTime: time.Now()}
}

func notifyListeners(listeners []Listener, evt *Event) {
	for _, l := range listeners {
		func() {
			defer func() { _ = recover() }()
			l.ProcessEvent(evt)
		}()
	}
}

func addListener(listeners []Listener, l Listener) []Listener {
	return append(listeners, l)
}

func removeListener(listeners []Listener, l Listener) ([]Listener, bool) {
	for i, cur := range listeners {
		if cur == l {
			return append(listeners[:i], listeners[i+1:]...), true
		}
	}

	return listeners, false
}
