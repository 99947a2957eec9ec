// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     server
// Description: gRPC front end service (mote.v1.FrontEnd)
// Author:      msto63
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package server

import (
	"context"

	motelog "github.com/msto63/mote/foundation/core/log"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	coregrpc "github.com/msto63/mote/pkg/core/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements FrontEndServer on top of the front end service
type Server struct {
	service *frontend.Service
	logger  *motelog.Logger
}

// New creates a new front end gRPC server
func New(service *frontend.Service, logger *motelog.Logger) *Server {
	if logger == nil {
		logger = motelog.GetDefault()
	}
	return &Server{
		service: service,
		logger:  logger.WithName("frontend-server"),
	}
}

// Parse tokenizes and parses the request source
func (s *Server) Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	request, err := s.decodeRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.service.Parse(ctx, request)
	if err != nil {
		return nil, status.FromContextError(err).Err()
	}
	return encodeOutcome(outcome)
}

// Tokenize tokenizes the request source
func (s *Server) Tokenize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	request, err := s.decodeRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.service.Tokenize(ctx, request)
	if err != nil {
		return nil, status.FromContextError(err).Err()
	}
	return encodeOutcome(outcome)
}

func (s *Server) decodeRequest(ctx context.Context, req *structpb.Struct) (frontend.Request, error) {
	fields := req.GetFields()

	sourceValue, ok := fields["source"]
	if !ok {
		return frontend.Request{}, status.Error(codes.InvalidArgument, "source is required")
	}
	source, ok := sourceValue.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return frontend.Request{}, status.Error(codes.InvalidArgument, "source must be a string")
	}

	name := "request"
	if v, ok := fields["name"]; ok && v.GetStringValue() != "" {
		name = v.GetStringValue()
	}

	s.logger.WithRequestID(coregrpc.GetRequestID(ctx)).Trace("request decoded", motelog.Fields{
		"name":   name,
		"length": len(source.StringValue),
	})

	return frontend.Request{
		Name:   name,
		Source: source.StringValue,
		Origin: history.OriginGRPC,
	}, nil
}

// encodeOutcome builds the response envelope
func encodeOutcome(outcome *frontend.Outcome) (*structpb.Struct, error) {
	response := map[string]interface{}{
		"run_id": outcome.RunID,
		"ok":     outcome.OK(),
		"cached": outcome.Cached,
		"stats": map[string]interface{}{
			"tokens":      len(outcome.Tokens),
			"nodes":       outcome.Stats.Nodes,
			"depth":       outcome.Stats.Depth,
			"calls":       outcome.Stats.Calls,
			"returns":     outcome.Stats.Returns,
			"duration_us": outcome.Duration.Microseconds(),
		},
	}

	if info := frontend.Describe(outcome.Err); info != nil {
		response["error"] = map[string]interface{}{
			"kind":     info.Kind,
			"code":     info.Code,
			"message":  info.Message,
			"offset":   info.Offset,
			"position": info.Position,
			"found":    info.Found,
			"context":  info.Context,
		}
	} else if outcome.Operation == frontend.OpParse {
		response["ast"] = moteast.ToMap(outcome.Root)
	} else {
		response["tokens"] = encodeTokens(outcome.Tokens)
	}

	result, err := structpb.NewStruct(response)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return result, nil
}

func encodeTokens(tokens []moteparser.Token) []interface{} {
	list := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		list[i] = map[string]interface{}{
			"kind":   tok.Kind.String(),
			"text":   tok.Text,
			"offset": tok.Offset,
		}
	}
	return list
}
