package kvpb

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

type Entry struct{ *dynamicpb.Message }

func NewEntry(key, value []byte) *Entry {
	x := &Entry{dynamicpb.NewMessage(entryDesc)}
	setBytes(x.Message, "key", key)
	setBytes(x.Message, "value", value)
	return x
}

func (x *Entry) GetKey() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "key")
}

func (x *Entry) GetValue() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "value")
}

type GetRequest struct{ *dynamicpb.Message }

func NewGetRequest(key []byte) *GetRequest {
	x := &GetRequest{dynamicpb.NewMessage(getRequestDesc)}
	setBytes(x.Message, "key", key)
	return x
}

func (x *GetRequest) GetKey() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "key")
}

type GetResponse struct{ *dynamicpb.Message }

func NewGetResponse(entry *Entry) *GetResponse {
	x := &GetResponse{dynamicpb.NewMessage(getResponseDesc)}
	setMessage(x.Message, "entry", entry)
	return x
}

func (x *GetResponse) GetEntry() *Entry {
	if x == nil {
		return nil
	}
	return getEntry(x.Message, "entry")
}

type PutRequest struct{ *dynamicpb.Message }

func NewPutRequest(key, value []byte) *PutRequest {
	x := &PutRequest{dynamicpb.NewMessage(putRequestDesc)}
	setBytes(x.Message, "key", key)
	setBytes(x.Message, "value", value)
	return x
}

func (x *PutRequest) GetKey() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "key")
}

func (x *PutRequest) GetValue() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "value")
}

type PutResponse struct{ *dynamicpb.Message }

func NewPutResponse(previous []byte, replaced bool) *PutResponse {
	x := &PutResponse{dynamicpb.NewMessage(putResponseDesc)}
	setBytes(x.Message, "previous", previous)
	setBool(x.Message, "replaced", replaced)
	return x
}

func (x *PutResponse) GetPrevious() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "previous")
}

func (x *PutResponse) GetReplaced() bool {
	if x == nil {
		return false
	}
	return getBool(x.Message, "replaced")
}

type DeleteRequest struct{ *dynamicpb.Message }

func NewDeleteRequest(key []byte) *DeleteRequest {
	x := &DeleteRequest{dynamicpb.NewMessage(deleteRequestDesc)}
	setBytes(x.Message, "key", key)
	return x
}

func (x *DeleteRequest) GetKey() []byte {
	if x == nil {
		return nil
	}
	return getBytes(x.Message, "key")
}

type DeleteResponse struct{ *dynamicpb.Message }

func NewDeleteResponse(entry *Entry, deleted bool) *DeleteResponse {
	x := &DeleteResponse{dynamicpb.NewMessage(deleteResponseDesc)}
	setMessage(x.Message, "entry", entry)
	setBool(x.Message, "deleted", deleted)
	return x
}

func (x *DeleteResponse) GetEntry() *Entry {
	if x == nil {
		return nil
	}
	return getEntry(x.Message, "entry")
}

func (x *DeleteResponse) GetDeleted() bool {
	if x == nil {
		return false
	}
	return getBool(x.Message, "deleted")
}

func fieldOf(m *dynamicpb.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

// proto3 scalars carry no presence, so empty bytes and false are stored as unset.

func setBytes(m *dynamicpb.Message, name protoreflect.Name, b []byte) {
	fd := fieldOf(m, name)
	if len(b) == 0 {
		m.Clear(fd)
		return
	}
	m.Set(fd, protoreflect.ValueOfBytes(b))
}

func getBytes(m *dynamicpb.Message, name protoreflect.Name) []byte {
	if m == nil {
		return nil
	}
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return nil
	}
	return m.Get(fd).Bytes()
}

func setBool(m *dynamicpb.Message, name protoreflect.Name, v bool) {
	fd := fieldOf(m, name)
	if !v {
		m.Clear(fd)
		return
	}
	m.Set(fd, protoreflect.ValueOfBool(v))
}

func getBool(m *dynamicpb.Message, name protoreflect.Name) bool {
	if m == nil {
		return false
	}
	return m.Get(fieldOf(m, name)).Bool()
}

func setMessage(m *dynamicpb.Message, name protoreflect.Name, e *Entry) {
	if e == nil || e.Message == nil {
		return
	}
	m.Set(fieldOf(m, name), protoreflect.ValueOfMessage(e.Message))
}

func getEntry(m *dynamicpb.Message, name protoreflect.Name) *Entry {
	if m == nil {
		return nil
	}
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return nil
	}

	nested := m.Get(fd).Message().Interface()
	if dm, ok := nested.(*dynamicpb.Message); ok {
		return &Entry{dm}
	}
	e := &Entry{dynamicpb.NewMessage(entryDesc)}
	proto.Merge(e.Message, nested)
	return e
}
