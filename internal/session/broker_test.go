package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threef-labs/threef-cli/internal/credentials"
)

func TestBroker_SubscribePublishUnsubscribe(t *testing.T) {
	b := NewBroker()

	var got []string
	unsubA := b.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Kind.String()) })
	unsubB := b.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Kind.String()) })
	assert.Equal(t, 2, b.Len())

	b.Publish(Event{Kind: SignedIn, Tokens: &credentials.SessionTokenSet{AccessToken: "x"}})
	assert.Equal(t, []string{"a:SIGNED_IN", "b:SIGNED_IN"}, got)

	unsubA()
	unsubA()
	assert.Equal(t, 1, b.Len())

	got = nil
	b.Publish(Event{Kind: SignedOut})
	assert.Equal(t, []string{"b:SIGNED_OUT"}, got)

	unsubB()
	got = nil
	b.Publish(Event{Kind: TokenRefreshed})
	assert.Empty(t, got)
	assert.Equal(t, 0, b.Len())
}

func TestBroker_ListenerMayUnsubscribeItself(t *testing.T) {
	b := NewBroker()
	calls := 0
	var unsub func()
	unsub = b.Subscribe(func(Event) {
		calls++
		unsub()
	})

	b.Publish(Event{Kind: SignedIn})
	b.Publish(Event{Kind: SignedIn})
	assert.Equal(t, 1, calls)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "UNKNOWN", EventKind(42).String())
}
