/*
Package server implements msgpack IPC for the suggestion engine.

The protocol is request/response over stdin/stdout with binary msgpack
encoding. Each message carries an ID echoed back in the response and an
action selecting the operation.

A completion request:

	{"id": "req_001", "a": "complete", "p": "ca", "l": 10}

is answered with suggestions ranked by frequency:

	{"id": "req_001", "s": [{"w": "car", "f": 5, "r": 1}, {"w": "cat", "f": 5, "r": 2}], "c": 2, "t": 38}

Mutation requests use the same envelope:

	{"id": "m_001", "a": "insert", "w": "cat", "f": 1}
	{"id": "m_002", "a": "update", "w": "cat", "f": 40}
	{"id": "m_003", "a": "remove", "w": "cat"}

and are acknowledged with a status response. "save" persists the live
dictionary to the configured path, "stats" returns engine counters and
"health" answers a liveness probe. Invalid requests produce an error
response with a code; nothing the client sends can crash the server.
*/
package server

// Request is the single request envelope for all actions.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`
	Prefix string `msgpack:"p,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Freq   int    `msgpack:"f,omitempty"`
}

// ResponseSuggestion is one ranked entry in a completion response.
type ResponseSuggestion struct {
	Word string `msgpack:"w"`
	Freq int    `msgpack:"f"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse answers a complete request. TimeTaken is in
// microseconds.
type CompletionResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []ResponseSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// StatusResponse acknowledges mutations, saves and health checks.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// StatsResponse carries engine counters.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
