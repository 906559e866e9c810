package cdata

import (
	"errors"
	"testing"

	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_YieldsOneBatchThenEnds(t *testing.T) {
	delivered := false
	var stream ArrowArrayStream
	ExportStream(
		func(out *ArrowSchema) error {
			ExportSchema("i", "xs", nil, 0, nil, out)
			return nil
		},
		func(out *ArrowArray) (bool, error) {
			if delivered {
				return false, nil
			}
			delivered = true
			ExportArray(3, 0, 0, [][]byte{nil, int32Bytes([]int32{1, 2, 3})}, nil, out)
			return true, nil
		},
		&stream,
	)

	var schema ArrowSchema
	require.NoError(t, StreamGetSchema(&stream, &schema))
	imported, err := ImportSchema(&schema)
	require.NoError(t, err)
	assert.Equal(t, "i", imported.Format)
	ReleaseSchema(&schema)

	var batch ArrowArray
	ok, err := StreamGetNext(&stream, &batch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), batch.Length())
	ReleaseArray(&batch)

	var end ArrowArray
	ok, err = StreamGetNext(&stream, &end)
	require.NoError(t, err)
	assert.False(t, ok)

	ReleaseStream(&stream)
	ReleaseStream(&stream) // idempotent after the first call nils itself out
	_, err = StreamGetNext(&stream, &end)
	assert.ErrorIs(t, err, contracts.ErrNilRelease)
}

func TestStream_SchemaCanBePulledRepeatedly(t *testing.T) {
	var stream ArrowArrayStream
	ExportStream(
		func(out *ArrowSchema) error {
			ExportSchema("l", "", nil, 0, nil, out)
			return nil
		},
		func(out *ArrowArray) (bool, error) { return false, nil },
		&stream,
	)
	defer ReleaseStream(&stream)

	for i := 0; i < 2; i++ {
		var schema ArrowSchema
		require.NoError(t, StreamGetSchema(&stream, &schema))
		imported, err := ImportSchema(&schema)
		require.NoError(t, err)
		assert.Equal(t, "l", imported.Format)
		ReleaseSchema(&schema)
	}
}

func TestStream_CallbackErrorSurfacesThroughLastError(t *testing.T) {
	var stream ArrowArrayStream
	ExportStream(
		func(out *ArrowSchema) error { return errors.New("schema construction failed") },
		func(out *ArrowArray) (bool, error) { return false, errors.New("no batches here") },
		&stream,
	)
	defer ReleaseStream(&stream)

	var schema ArrowSchema
	err := StreamGetSchema(&stream, &schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrStreamFailure)
	assert.Contains(t, err.Error(), "schema construction failed")

	var batch ArrowArray
	_, err = StreamGetNext(&stream, &batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no batches here")
}

func TestExportStructArray_ReleasingParentReleasesChildren(t *testing.T) {
	child := &ArrowArray{}
	ExportArray(2, 0, 0, [][]byte{nil, int32Bytes([]int32{7, 8})}, nil, child)

	var parent ArrowArray
	ExportStructArray(2, []*ArrowArray{child}, &parent)

	cp := cArray(&parent)
	require.Equal(t, int64(1), int64(cp.n_children))
	require.Equal(t, int64(1), int64(cp.n_buffers))

	ReleaseArray(&parent)
	assert.Nil(t, cArray(child).release)
	assert.Nil(t, cp.release)
}
