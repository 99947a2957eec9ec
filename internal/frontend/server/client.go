package server

import (
	"context"
	"fmt"

	moteerror "github.com/msto63/mote/foundation/core/error"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	"github.com/msto63/mote/internal/frontend"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// TokenInfo is a token as reported by the remote service
type TokenInfo struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
}

// Response is the decoded response envelope
type Response struct {
	RunID  string              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	OK     bool                `json:"ok" yaml:"ok"`
	Cached bool                `json:"cached" yaml:"cached"`
	Root   *moteast.Node       `json:"-" yaml:"-"`
	Tokens []TokenInfo         `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Stats  map[string]int64    `json:"stats" yaml:"stats"`
	Error  *frontend.ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
}

// Err converts a reported failure into a structured error
func (r *Response) Err() error {
	if r.OK || r.Error == nil {
		return nil
	}
	return moteerror.New(r.Error.Message).
		WithCode(moteerror.Code(r.Error.Code)).
		WithOperation("remote").
		WithDetail("offset", r.Error.Offset)
}

// Client calls the front end service over an existing connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Parse sends source to the remote Parse method
func (c *Client) Parse(ctx context.Context, name, source string) (*Response, error) {
	return c.call(ctx, ParseMethod, name, source)
}

// Tokenize sends source to the remote Tokenize method
func (c *Client) Tokenize(ctx context.Context, name, source string) (*Response, error) {
	return c.call(ctx, TokenizeMethod, name, source)
}

func (c *Client) call(ctx context.Context, method, name, source string) (*Response, error) {
	req, err := structpb.NewStruct(map[string]interface{}{
		"name":   name,
		"source": source,
	})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, out); err != nil {
		return nil, moteerror.Wrap(err, "remote call failed").
			WithCode(moteerror.CodeServiceUnavailable).
			WithOperation(method)
	}
	return decodeResponse(out)
}

func decodeResponse(out *structpb.Struct) (*Response, error) {
	m := out.AsMap()
	resp := &Response{Stats: make(map[string]int64)}

	resp.RunID, _ = m["run_id"].(string)
	resp.OK, _ = m["ok"].(bool)
	resp.Cached, _ = m["cached"].(bool)

	if stats, ok := m["stats"].(map[string]interface{}); ok {
		for k, v := range stats {
			if f, ok := v.(float64); ok {
				resp.Stats[k] = int64(f)
			}
		}
	}

	if e, ok := m["error"].(map[string]interface{}); ok {
		resp.Error = &frontend.ErrorInfo{
			Kind:     str(e["kind"]),
			Code:     str(e["code"]),
			Message:  str(e["message"]),
			Offset:   integer(e["offset"]),
			Position: integer(e["position"]),
			Found:    str(e["found"]),
			Context:  str(e["context"]),
		}
	}

	if tree, ok := m["ast"].(map[string]interface{}); ok {
		root, err := moteast.FromMap(tree)
		if err != nil {
			return nil, fmt.Errorf("invalid tree in response: %w", err)
		}
		resp.Root = root
	}

	if tokens, ok := m["tokens"].([]interface{}); ok {
		for _, item := range tokens {
			t, _ := item.(map[string]interface{})
			resp.Tokens = append(resp.Tokens, TokenInfo{
				Kind:   str(t["kind"]),
				Text:   str(t["text"]),
				Offset: integer(t["offset"]),
			})
		}
	}

	return resp, nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func integer(v interface{}) int {
	f, _ := v.(float64)
	return int(f)
}
