package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopicRegistry(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		registry, err := NewTopicRegistry(DefaultTopics()...)
		require.NoError(t, err)

		for _, key := range []string{
			TopicCustomerSuccessfulCheckout,
			TopicSalesSuccessfulCheckout,
			TopicCustomerCompletedCreditApp,
			TopicSalesCompletedCreditApp,
			TopicCustomerSavedSearch,
			TopicSalesSavedSearch,
		} {
			topic, err := registry.Lookup(key)
			require.NoError(t, err, key)
			assert.Equal(t, ChannelEmail, topic.Channel)
		}
	})

	t.Run("Unknown key", func(t *testing.T) {
		registry, err := NewTopicRegistry(DefaultTopics()...)
		require.NoError(t, err)

		_, err = registry.Lookup("nope")
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("Duplicate key", func(t *testing.T) {
		topic := Topic{Key: "a", Subject: "s", Template: "a.html"}
		_, err := NewTopicRegistry(topic, topic)
		assert.Error(t, err)
	})

	t.Run("Empty template", func(t *testing.T) {
		_, err := NewTopicRegistry(Topic{Key: "a", Subject: "s"})
		assert.Error(t, err)
	})

	t.Run("Channel defaults to email", func(t *testing.T) {
		registry, err := NewTopicRegistry(Topic{Key: "a", Subject: "s", Template: "a.html"})
		require.NoError(t, err)
		topic, err := registry.Lookup("a")
		require.NoError(t, err)
		assert.Equal(t, ChannelEmail, topic.Channel)
	})
}

func TestTopic_RenderSubject(t *testing.T) {
	topic := Topic{Key: "credit", Subject: "Thanks {{.FirstName}}", Template: "x.html"}

	subject, err := topic.RenderSubject(RenderContext{"FirstName": "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "Thanks Jane", subject)

	_, err = Topic{Key: "bad", Subject: "{{.Broken"}.RenderSubject(RenderContext{})
	assert.Error(t, err)
}
