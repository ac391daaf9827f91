// Package kvpb holds the protobuf messages and the service description of the
// memdb.v1.KVStore gRPC API defined in proto/grpc/kv.proto.
//
// The file descriptor is assembled at init from descriptorpb and registered in
// the global registry, so server reflection and grpcurl see the schema of
// kv.proto. Changes to kv.proto must be mirrored in fileDescriptorProto.
package kvpb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	FileName = "memdb/v1/kv.proto"
	Package  = "memdb.v1"
)

var (
	File protoreflect.FileDescriptor

	entryDesc          protoreflect.MessageDescriptor
	getRequestDesc     protoreflect.MessageDescriptor
	getResponseDesc    protoreflect.MessageDescriptor
	putRequestDesc     protoreflect.MessageDescriptor
	putResponseDesc    protoreflect.MessageDescriptor
	deleteRequestDesc  protoreflect.MessageDescriptor
	deleteResponseDesc protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("kvpb: failed to build file descriptor: %s", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("kvpb: failed to register file descriptor: %s", err))
	}

	File = fd
	msgs := fd.Messages()
	entryDesc = msgs.ByName("Entry")
	getRequestDesc = msgs.ByName("GetRequest")
	getResponseDesc = msgs.ByName("GetResponse")
	putRequestDesc = msgs.ByName("PutRequest")
	putResponseDesc = msgs.ByName("PutResponse")
	deleteRequestDesc = msgs.ByName("DeleteRequest")
	deleteResponseDesc = msgs.ByName("DeleteResponse")

	for i := range msgs.Len() {
		if err := protoregistry.GlobalTypes.RegisterMessage(dynamicpb.NewMessageType(msgs.Get(i))); err != nil {
			panic(fmt.Sprintf("kvpb: failed to register message type: %s", err))
		}
	}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String(Package),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/shrtyk/memdb/internal/api/grpc/kvpb"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			msgProto("Entry", bytesField("key", 1), bytesField("value", 2)),
			msgProto("GetRequest", bytesField("key", 1)),
			msgProto("GetResponse", messageField("entry", 1, "Entry")),
			msgProto("PutRequest", bytesField("key", 1), bytesField("value", 2)),
			msgProto("PutResponse", bytesField("previous", 1), boolField("replaced", 2)),
			msgProto("DeleteRequest", bytesField("key", 1)),
			msgProto("DeleteResponse", messageField("entry", 1, "Entry"), boolField("deleted", 2)),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("KVStore"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Get", "GetRequest", "GetResponse"),
				method("Put", "PutRequest", "PutResponse"),
				method("Delete", "DeleteRequest", "DeleteResponse"),
			},
		}},
	}
}

func msgProto(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func bytesField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return field(name, number, descriptorpb.FieldDescriptorProto_TYPE_BYTES)
}

func boolField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return field(name, number, descriptorpb.FieldDescriptorProto_TYPE_BOOL)
}

func messageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := field(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String("." + Package + "." + typeName)
	return f
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + Package + "." + in),
		OutputType: proto.String("." + Package + "." + out),
	}
}
