package countdown_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/cartrecon/internal/countdown"
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTimer_StartAndReset(t *testing.T) {
	timer := countdown.New(time.Hour, countdown.WithTick(time.Millisecond))
	defer timer.Stop()

	assert.Equal(t, time.Hour, timer.Remaining())
	assert.False(t, timer.Running())

	timer.Start()
	timer.Start()
	assert.True(t, timer.Running())

	assert.Eventually(t, func() bool {
		return timer.Remaining() < time.Hour
	}, time.Second, time.Millisecond)

	timer.Reset()
	assert.False(t, timer.Running())
	assert.Equal(t, time.Hour, timer.Remaining())
}

func TestTimer_StopKeepsRemaining(t *testing.T) {
	timer := countdown.New(time.Hour, countdown.WithTick(time.Millisecond))

	timer.Start()
	assert.Eventually(t, func() bool {
		return timer.Remaining() < time.Hour
	}, time.Second, time.Millisecond)

	timer.Stop()
	left := timer.Remaining()
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, left, timer.Remaining())
	assert.False(t, timer.Running())
}

func TestTimer_Expires(t *testing.T) {
	timer := countdown.New(5*time.Millisecond, countdown.WithTick(time.Millisecond))
	defer timer.Stop()

	timer.Start()
	assert.Eventually(t, timer.Expired, time.Second, time.Millisecond)
	assert.False(t, timer.Running())

	timer.Start()
	assert.False(t, timer.Running(), "an expired timer stays expired until reset")

	timer.Reset()
	assert.Equal(t, 5*time.Millisecond, timer.Remaining())
}

func TestTimer_FollowsCartEvents(t *testing.T) {
	timer := countdown.New(time.Hour, countdown.WithTick(time.Millisecond))
	defer timer.Stop()

	timer.Publish(domain.Event{Kind: domain.EventItemAdded, CartLines: 1})
	assert.True(t, timer.Running())

	timer.Publish(domain.Event{Kind: domain.EventItemRemoved, CartLines: 0})
	assert.False(t, timer.Running())
	assert.Equal(t, time.Hour, timer.Remaining())
}

func TestNew_DefaultWindow(t *testing.T) {
	timer := countdown.New(0)
	assert.Equal(t, countdown.DefaultWindow, timer.Remaining())
}
