package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_Now(t *testing.T) {
	assert.WithinDuration(t, time.Now(), System{}.Now(), time.Second)
}

func TestMock(t *testing.T) {
	start := time.Date(2024, 3, 4, 7, 0, 0, 0, time.Local)
	m := NewMock(start)

	assert.True(t, m.Now().Equal(start))

	m.Advance(90 * time.Minute)
	assert.True(t, m.Now().Equal(start.Add(90*time.Minute)))

	later := time.Date(2024, 3, 4, 13, 0, 0, 0, time.Local)
	m.Set(later)
	assert.True(t, m.Now().Equal(later))
}
