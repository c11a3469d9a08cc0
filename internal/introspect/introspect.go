// Package introspect runs an optional gRPC debug service over a live
// RuntimeContext, so an external tool (IDE, debugger UI, grpcurl) can list
// the functions, types and constants a running embedder installed without
// linking against this module's Go types. It exposes metadata only —
// never a way to invoke a function remotely — so it does not reopen
// spec.md's "no cross-process function portability" non-goal.
//
// The dynamic-descriptor wiring mirrors the teacher's builtins_grpc.go: a
// fixed .proto schema is parsed with protoparse, its ServiceDescriptor is
// turned into a grpc.ServiceDesc by hand, and every RPC is answered with a
// dynamic.Message built straight from the descriptor rather than a
// generated .pb.go stub.
package introspect

import (
	"context"
	"fmt"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	rivetcontext "github.com/rivetlang/rivet/internal/context"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/protocol"
	"github.com/rivetlang/rivet/internal/value"
)

var intoTypeNameHash = protocol.IntoTypeName.Hash

const schemaFile = "introspect.proto"

const schema = `syntax = "proto3";
package introspect;

message Empty {}

message FunctionList {
  repeated string names = 1;
}

message TypeList {
  repeated string names = 1;
}

message ConstantRequest {
  string path = 1;
}

message ConstantValue {
  bool found = 1;
  string value = 2;
}

service Introspect {
  rpc ListFunctions(Empty) returns (FunctionList);
  rpc ListTypes(Empty) returns (TypeList);
  rpc Constant(ConstantRequest) returns (ConstantValue);
  rpc IntoTypeName(ConstantRequest) returns (ConstantValue);
}
`

// Service binds the fixed introspection schema to a live RuntimeContext.
type Service struct {
	rt *rivetcontext.RuntimeContext
	sd *desc.ServiceDescriptor
}

// New parses the introspection schema and binds it to rt.
func New(rt *rivetcontext.RuntimeContext) (*Service, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFile: schema}),
	}
	fds, err := parser.ParseFiles(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("introspect: parsing schema: %w", err)
	}
	sd := fds[0].FindService("introspect.Introspect")
	if sd == nil {
		return nil, fmt.Errorf("introspect: schema declares no Introspect service")
	}
	return &Service{rt: rt, sd: sd}, nil
}

// Register attaches the Introspect service to server and turns on gRPC
// server reflection, so a generic client can discover the four RPCs
// without a compiled client stub.
func (s *Service) Register(server *grpc.Server) {
	gsd := &grpc.ServiceDesc{
		ServiceName: s.sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Metadata:    schemaFile,
	}
	for _, method := range s.sd.GetMethods() {
		md := method
		gsd.Methods = append(gsd.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(srv interface{}, _ context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Service).handle(md, dec)
			},
		})
	}
	server.RegisterService(gsd, s)
	reflection.Register(server)
}

func (s *Service) handle(md *desc.MethodDescriptor, dec func(interface{}) error) (interface{}, error) {
	in := dynamic.NewMessage(md.GetInputType())
	if err := dec(in); err != nil {
		return nil, fmt.Errorf("introspect: decoding request: %w", err)
	}
	out := dynamic.NewMessage(md.GetOutputType())

	switch md.GetName() {
	case "ListFunctions":
		if err := out.TrySetFieldByName("names", namesOf(s.rt.FunctionHashes(), s.rt.FunctionName)); err != nil {
			return nil, err
		}
	case "ListTypes":
		if err := out.TrySetFieldByName("names", namesOf(s.rt.TypeHashes(), s.rt.TypeName)); err != nil {
			return nil, err
		}
	case "Constant":
		item, err := parsePathField(in)
		if err != nil {
			return nil, err
		}
		return constantResult(out, s.rt.LookupConstant(hashid.TypeHash(item)))
	case "IntoTypeName":
		// §4.1: the INTO_TYPE_NAME constant for path lives not at
		// TypeHash(path) itself but at the instance-function slot derived
		// from it, the same derivation Context.installTypeName performs.
		item, err := parsePathField(in)
		if err != nil {
			return nil, err
		}
		slot := hashid.InstanceFunction(hashid.TypeHash(item), intoTypeNameHash)
		return constantResult(out, s.rt.LookupConstant(slot))
	default:
		return nil, fmt.Errorf("introspect: unknown method %s", md.GetName())
	}
	return out, nil
}

func parsePathField(in *dynamic.Message) (hashid.Item, error) {
	raw, err := in.TryGetFieldByName("path")
	if err != nil {
		return nil, fmt.Errorf("introspect: reading request path: %w", err)
	}
	item, err := hashid.Parse(fmt.Sprint(raw))
	if err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	return item, nil
}

func constantResult(out *dynamic.Message, v value.Value, found bool) (*dynamic.Message, error) {
	if err := out.TrySetFieldByName("found", found); err != nil {
		return nil, err
	}
	if found {
		if err := out.TrySetFieldByName("value", v.String()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func namesOf(hashes []hashid.Hash, lookup func(hashid.Hash) (string, bool)) []string {
	names := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if name, ok := lookup(h); ok {
			names = append(names, name)
		}
	}
	return names
}

// Serve is a convenience one-shot: listens on addr and blocks serving the
// introspection service until the listener errors or the process exits.
// cmd/rivet calls this when config.IntrospectConfig.Enabled is set.
func Serve(rt *rivetcontext.RuntimeContext, addr string) error {
	svc, err := New(rt)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("introspect: listening on %s: %w", addr, err)
	}
	server := grpc.NewServer()
	svc.Register(server)
	return server.Serve(lis)
}
