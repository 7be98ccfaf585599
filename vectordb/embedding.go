package vectordb

import (
	"fmt"

	"github.com/viant/bintly"
)

var writers = bintly.NewWriters()
var readers = bintly.NewReaders()

// Embedding is a stored vector with a compact binary representation.
type Embedding []float32

// EncodeBinary encodes the vector to a binary stream.
func (e Embedding) EncodeBinary(stream *bintly.Writer) error {
	stream.Int(len(e))
	for _, value := range e {
		stream.Float32(value)
	}
	return nil
}

// DecodeBinary decodes the vector from a binary stream.
func (e *Embedding) DecodeBinary(stream *bintly.Reader) error {
	var size int
	stream.Int(&size)
	if size < 0 {
		return fmt.Errorf("invalid embedding size: %d", size)
	}
	out := make(Embedding, size)
	for i := 0; i < size; i++ {
		stream.Float32(&out[i])
	}
	*e = out
	return nil
}

// EncodeEmbedding serializes a vector for BLOB storage.
func EncodeEmbedding(vector []float32) ([]byte, error) {
	writer := writers.Get()
	defer writers.Put(writer)
	if err := Embedding(vector).EncodeBinary(writer); err != nil {
		return nil, err
	}
	data := writer.Bytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// DecodeEmbedding restores a vector from its BLOB form.
func DecodeEmbedding(data []byte) ([]float32, error) {
	reader := readers.Get()
	defer readers.Put(reader)
	if err := reader.FromBytes(data); err != nil {
		return nil, err
	}
	var out Embedding
	if err := out.DecodeBinary(reader); err != nil {
		return nil, err
	}
	return out, nil
}
