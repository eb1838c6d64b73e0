package common

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomReferenceIsNineDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		ref := RandomReference()
		assert.Len(t, ref, 9)

		n, err := strconv.Atoi(ref)
		assert.Nil(t, err)
		assert.GreaterOrEqual(t, n, 100000000)
		assert.LessOrEqual(t, n, 999999999)
	}
}

func TestPaginateResponse(t *testing.T) {
	result := PaginateResponse([]string{"a", "b"}, 12, 2, 5, "")

	assert.Equal(t, "success", result.Message)
	assert.Equal(t, int64(12), result.Count)
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 3, result.NextPage)
	assert.Equal(t, 1, result.PrevPage)
	assert.Equal(t, 3, result.LastPage)
}

func TestPaginateResponseBounds(t *testing.T) {
	first := PaginateResponse(nil, 12, 1, 5, "payments")
	assert.Equal(t, "payments", first.Message)
	assert.Equal(t, 0, first.PrevPage)

	last := PaginateResponse(nil, 12, 3, 5, "")
	assert.Equal(t, 0, last.NextPage)

	empty := PaginateResponse(nil, 0, 1, 5, "")
	assert.Equal(t, 0, empty.LastPage)
	assert.Equal(t, 0, empty.NextPage)
}

func TestResponseShapes(t *testing.T) {
	ok := NewSuccessResponse("data", "done")
	assert.True(t, ok.Success)
	assert.Equal(t, 200, ok.Status)

	bad := NewErrorResponse("nope", nil, 400)
	assert.False(t, bad.Success)
	assert.Equal(t, 400, bad.Status)

	gw := NewGatewayErrorResponse(726, "duplicated")
	assert.True(t, gw.Error)
	assert.Equal(t, 726, gw.Code)
	assert.Equal(t, "duplicated", gw.Message)
}
