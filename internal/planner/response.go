package planner

import "metro-router/internal/transit"

const MessageNoRoute = "No route found between the selected stations."

// Response is the wire form of a route query, shared by HTTP and NATS.
type Response struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Found bool   `json:"found"`
	transit.Route
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewResponse(from, to string, r transit.Route, err error) Response {
	resp := Response{From: from, To: to, Found: r.Found(), Route: r}
	if resp.Path == nil {
		resp.Path = []string{}
	}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	switch {
	case err != nil:
		resp.Error = err.Error()
	case !resp.Found:
		resp.Message = MessageNoRoute
	}
	return resp
}
