package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "ssis:list:students:abc", Key("ssis", "list", "students", "abc"))
	assert.Equal(t, "list:students", Key("", "list", "", "students"))
	assert.Equal(t, "", Key())
}
