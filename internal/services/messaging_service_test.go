package services

import (
	"context"
	"testing"

	"github.com/campushub/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagingFixture struct {
	users         *fakeUserRepo
	conversations *fakeConversationRepo
	svc           *MessagingService
}

func newMessagingFixture() *messagingFixture {
	f := &messagingFixture{
		users:         newFakeUserRepo(),
		conversations: newFakeConversationRepo(),
	}
	f.svc = NewMessagingService(f.conversations, f.users, nil, zerolog.Nop())
	return f
}

// startConversation creates two users and a conversation between them.
func (f *messagingFixture) startConversation(t *testing.T) (alice, bob *models.User, conversationID uint) {
	t.Helper()
	alice = f.users.addUser(true)
	bob = f.users.addUser(true)
	view, err := f.svc.CreateConversation(context.Background(), alice.ID, []uint{bob.ID})
	require.NoError(t, err)
	return alice, bob, view.ID
}

func TestCreateConversation(t *testing.T) {
	f := newMessagingFixture()
	alice := f.users.addUser(true)
	bob := f.users.addUser(true)

	view, err := f.svc.CreateConversation(context.Background(), alice.ID, []uint{bob.ID, bob.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, view.ParticipantIDs)
	assert.Nil(t, view.LastMessage)
}

func TestCreateConversationValidation(t *testing.T) {
	f := newMessagingFixture()
	alice := f.users.addUser(true)

	// A conversation with only the creator in it is rejected.
	_, err := f.svc.CreateConversation(context.Background(), alice.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = f.svc.CreateConversation(context.Background(), alice.ID, []uint{alice.ID})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.CreateConversation(context.Background(), alice.ID, []uint{999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddParticipant(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)
	carol := f.users.addUser(true)
	outsider := f.users.addUser(true)

	assert.ErrorIs(t, f.svc.AddParticipant(context.Background(), outsider.ID, conversationID, carol.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.AddParticipant(context.Background(), alice.ID, conversationID, 999), ErrNotFound)
	assert.ErrorIs(t, f.svc.AddParticipant(context.Background(), alice.ID, conversationID, bob.ID), ErrInvalidArgument)

	require.NoError(t, f.svc.AddParticipant(context.Background(), alice.ID, conversationID, carol.ID))
	ok, err := f.conversations.IsParticipant(conversationID, carol.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSendMessage(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)

	message, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "hi bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, message.SenderID)
	assert.Equal(t, bob.ID, message.ReceiverID)
	assert.False(t, message.IsRead)

	// The conversation's last-message cache follows the append atomically.
	conversation, err := f.conversations.GetConversationByID(conversationID)
	require.NoError(t, err)
	require.NotNil(t, conversation.LastMessageID)
	assert.Equal(t, message.ID, *conversation.LastMessageID)
	assert.Equal(t, message.SentAt, conversation.UpdatedAt)
}

func TestSendMessageValidation(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)
	outsider := f.users.addUser(true)

	_, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.SendMessage(context.Background(), 999, alice.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	// Sender outside the conversation is a permission error; receiver
	// outside it is a bad request.
	_, err = f.svc.SendMessage(context.Background(), conversationID, outsider.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.SendMessage(context.Background(), conversationID, alice.ID, outsider.ID, "hi")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListMessagesOrderAndAccess(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)
	outsider := f.users.addUser(true)

	for _, content := range []string{"one", "two", "three"} {
		_, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, content)
		require.NoError(t, err)
	}

	messages, err := f.svc.ListMessages(context.Background(), conversationID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)

	_, err = f.svc.ListMessages(context.Background(), conversationID, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteForViewerHidesOneSideOnly(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)

	first, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "first")
	require.NoError(t, err)
	second, err := f.svc.SendMessage(context.Background(), conversationID, bob.ID, alice.ID, "second")
	require.NoError(t, err)

	// Alice deletes the message she sent; Bob still sees it.
	require.NoError(t, f.svc.DeleteForViewer(context.Background(), conversationID, first.ID, alice.ID))

	aliceView, err := f.svc.ListMessages(context.Background(), conversationID, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceView, 1)
	assert.Equal(t, second.ID, aliceView[0].ID)

	bobView, err := f.svc.ListMessages(context.Background(), conversationID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobView, 2)

	// Bob deletes the same message as its receiver; both sides are now
	// hidden but the row and the last-message cache survive.
	require.NoError(t, f.svc.DeleteForViewer(context.Background(), conversationID, first.ID, bob.ID))
	bobView, err = f.svc.ListMessages(context.Background(), conversationID, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobView, 1)

	conversation, err := f.conversations.GetConversationByID(conversationID)
	require.NoError(t, err)
	require.NotNil(t, conversation.LastMessageID)
	assert.Equal(t, second.ID, *conversation.LastMessageID)
}

func TestDeleteForViewerAccess(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)
	carol := f.users.addUser(true)
	require.NoError(t, f.svc.AddParticipant(context.Background(), alice.ID, conversationID, carol.ID))

	message, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "between us")
	require.NoError(t, err)

	// A participant who is neither sender nor receiver cannot delete.
	assert.ErrorIs(t, f.svc.DeleteForViewer(context.Background(), conversationID, message.ID, carol.ID), ErrForbidden)

	// A message id from a different conversation is not found.
	otherView, err := f.svc.CreateConversation(context.Background(), alice.ID, []uint{carol.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.DeleteForViewer(context.Background(), otherView.ID, message.ID, alice.ID), ErrNotFound)
}

func TestMarkMessageReadReceiverOnly(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)

	message, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.MarkMessageRead(context.Background(), conversationID, message.ID, alice.ID), ErrForbidden)

	require.NoError(t, f.svc.MarkMessageRead(context.Background(), conversationID, message.ID, bob.ID))
	stored, err := f.conversations.GetMessageByID(message.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestMarkAllMessagesRead(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)

	toBob, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	toAlice, err := f.svc.SendMessage(context.Background(), conversationID, bob.ID, alice.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkAllMessagesRead(context.Background(), conversationID, bob.ID))

	stored, err := f.conversations.GetMessageByID(toBob.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	stored, err = f.conversations.GetMessageByID(toAlice.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)
}

func TestListConversationsIncludesLastMessage(t *testing.T) {
	f := newMessagingFixture()
	alice, bob, conversationID := f.startConversation(t)

	_, err := f.svc.SendMessage(context.Background(), conversationID, alice.ID, bob.ID, "newest")
	require.NoError(t, err)

	views, err := f.svc.ListConversations(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, conversationID, views[0].ID)
	require.NotNil(t, views[0].LastMessage)
	assert.Equal(t, "newest", views[0].LastMessage.Content)
}
