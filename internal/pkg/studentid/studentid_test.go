package studentid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	id := Generate("Computer Science")
	assert.Len(t, id, 7)
	assert.Equal(t, "COM", id[:3])

	other := Generate("Computer Science")
	assert.NotEqual(t, id, other, "uuid suffix should differ between calls")
}

func TestGeneratePrefixFiltersNonAlphanumerics(t *testing.T) {
	assert.Equal(t, "AIE", Generate("A.I. Engineering")[:3])
	assert.Equal(t, "3DD", Generate("3-D Design")[:3])
}

func TestGenerateShortMajor(t *testing.T) {
	id := Generate("IT")
	assert.Equal(t, "IT", id[:2])
	assert.Len(t, id, 6)
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "COM1a2b@stu.uni.edu", Email("COM1a2b"))
}
