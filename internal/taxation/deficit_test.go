package taxation

import (
	"testing"

	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeficitQueueFIFO(t *testing.T) {
	q := NewDeficitQueue().Push(1, 1_000).Push(2, 500).Push(3, 0)
	assert.Equal(t, 2, q.Len())

	next, used := q.Consume(1_200)
	assert.Equal(t, 1_200.0, used)
	assert.Equal(t, []domain.DeficitBucket{{YearIncurred: 2, Remaining: 300}}, next.Buckets())

	// the original queue is untouched
	assert.Equal(t, 1_500.0, q.Total())
	assert.Equal(t, 2, q.Len())
}

func TestDeficitQueueConsumeMoreThanAvailable(t *testing.T) {
	q := NewDeficitQueue(domain.DeficitBucket{YearIncurred: 1, Remaining: 400})
	next, used := q.Consume(1_000)
	assert.Equal(t, 400.0, used)
	assert.Equal(t, 0, next.Len())
}

func TestDeficitQueueExpire(t *testing.T) {
	q := NewDeficitQueue().Push(1, 100).Push(5, 200)

	assert.Equal(t, 300.0, q.Expire(11, 10).Total())
	assert.Equal(t, 200.0, q.Expire(12, 10).Total())
	assert.Equal(t, 0.0, q.Expire(16, 10).Total())
	assert.Equal(t, 300.0, q.Expire(40, 0).Total())
}

func TestDeficitQueuePushDoesNotAlias(t *testing.T) {
	base := NewDeficitQueue().Push(1, 100)
	a := base.Push(2, 10)
	b := base.Push(3, 20)

	assert.Equal(t, 110.0, a.Total())
	assert.Equal(t, 120.0, b.Total())
	assert.Equal(t, 100.0, base.Total())
}
