package iofile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/iofile"
	"github.com/outofforest/morselq1/internal/ioring"
)

func TestMemFileReadPageCopiesTheRightOffset(t *testing.T) {
	requireT := require.New(t)

	const pageSize = 8
	data := make([]byte, pageSize*3)
	for i := range data {
		data[i] = byte(i / pageSize)
	}
	f := iofile.NewMemFile(data, pageSize)

	requireT.EqualValues(pageSize*3, f.ReadSize())

	dst := make([]byte, pageSize)
	requireT.NoError(f.ReadPage(1, dst))
	for _, b := range dst {
		requireT.EqualValues(1, b)
	}
}

func TestMemFileReadPageOutOfRange(t *testing.T) {
	requireT := require.New(t)

	f := iofile.NewMemFile(make([]byte, 8), 8)
	requireT.Error(f.ReadPage(5, make([]byte, 8)))
}

func TestMemFileSubmitAsyncReadCompletesSynchronously(t *testing.T) {
	requireT := require.New(t)

	const pageSize = 8
	data := make([]byte, pageSize)
	for i := range data {
		data[i] = 0x7A
	}
	f := iofile.NewMemFile(data, pageSize)
	ring := ioring.NewFake(1)

	dst := make([]byte, pageSize)
	requireT.NoError(f.SubmitAsyncRead(ring, 0, dst, 99))

	done, err := ring.Wait()
	requireT.NoError(err)
	requireT.Equal([]uint64{99}, done)
	requireT.Equal(data, dst)
}
