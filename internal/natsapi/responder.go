// Package natsapi answers route queries sent as NATS requests.
package natsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"metro-router/internal/planner"
	"metro-router/internal/transit"
)

type Planner interface {
	Plan(ctx context.Context, from, to string) (transit.Route, error)
}

type ResponderMetrics interface {
	NATSRequestInc(ok bool)
	NATSSetConnected(connected bool)
}

// Request is the body of a route query.
type Request struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Connect dials NATS and keeps the connected gauge in step with the
// connection state.
func Connect(url string, m ResponderMetrics) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("routefinder"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return nc, nil
}

type Responder struct {
	ctx     context.Context
	nc      *nats.Conn
	sub     *nats.Subscription
	planner Planner
	metrics ResponderMetrics
}

// NewResponder joins queue on subject so that several instances share the
// request load. Cancelling ctx does not fail requests; they are answered
// until Close drains the connection.
func NewResponder(ctx context.Context, nc *nats.Conn, subject, queue string, p Planner, m ResponderMetrics) (*Responder, error) {
	r := newResponder(ctx, p, m)
	r.nc = nc
	sub, err := nc.QueueSubscribe(subject, queue, r.handle)
	if err != nil {
		return nil, err
	}
	r.sub = sub
	log.Printf("nats responder subject=%s queue=%s", subject, queue)
	return r, nil
}

func newResponder(ctx context.Context, p Planner, m ResponderMetrics) *Responder {
	return &Responder{ctx: context.WithoutCancel(ctx), planner: p, metrics: m}
}

func (r *Responder) handle(msg *nats.Msg) {
	if msg.Reply == "" {
		return
	}
	body, ok := r.Reply(r.ctx, msg.Data)
	if err := msg.Respond(body); err != nil {
		log.Printf("nats respond error: %v", err)
		ok = false
	}
	if r.metrics != nil {
		r.metrics.NATSRequestInc(ok)
	}
}

// Reply decodes a request, plans the route and returns the encoded
// response. The bool is false when the request was rejected.
func (r *Responder) Reply(ctx context.Context, data []byte) ([]byte, bool) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		b, _ := json.Marshal(planner.NewResponse("", "", transit.Route{}, fmt.Errorf("invalid request: %w", err)))
		return b, false
	}
	route, err := r.planner.Plan(ctx, req.From, req.To)
	b, mErr := json.Marshal(planner.NewResponse(req.From, req.To, route, err))
	if mErr != nil {
		log.Printf("nats marshal error: %v", mErr)
		return []byte(`{"error":"internal error"}`), false
	}
	return b, err == nil
}

// Close drains the connection, answering requests already received, and
// waits up to timeout for the drain to finish before closing.
func (r *Responder) Close(timeout time.Duration) {
	if r.nc == nil {
		return
	}
	if err := r.nc.Drain(); err != nil {
		log.Printf("nats drain error: %v", err)
		r.nc.Close()
		return
	}
	deadline := time.Now().Add(timeout)
	for !r.nc.IsClosed() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !r.nc.IsClosed() {
		log.Printf("nats drain timed out after %s", timeout)
	}
	r.nc.Close()
}
