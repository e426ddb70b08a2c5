package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They mirror the store's
// contractual behavior (unique constraints, not-found errors) without a
// database.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) addUser(verified bool) *models.User {
	user := &models.User{
		ID:             r.nextID,
		Username:       fmt.Sprintf("user%d", r.nextID),
		Nickname:       fmt.Sprintf("User %d", r.nextID),
		IsVerifiedUser: verified,
	}
	r.users[user.ID] = user
	r.nextID++
	return user
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByOpenID(openID string) (*models.User, error) {
	for _, u := range r.users {
		if u.OpenID != nil && *u.OpenID == openID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string, limit int) ([]models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) MarkVerificationSubmitted(userID uint, at time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.VerificationSubmittedAt = &at
	return nil
}

type fakePostRepo struct {
	posts  map[uint]*models.Post
	nextID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint]*models.Post), nextID: 1}
}

func (r *fakePostRepo) addPost(authorID *uint, title string) *models.Post {
	post := &models.Post{
		ID:       r.nextID,
		Title:    title,
		AuthorID: authorID,
		Status:   models.PostPublished,
	}
	r.posts[post.ID] = post
	r.nextID++
	return post
}

func (r *fakePostRepo) CreatePost(post *models.Post) error {
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (r *fakePostRepo) ListPosts(filter repositories.PostFilter) ([]models.Post, int64, error) {
	return nil, 0, nil
}

func (r *fakePostRepo) UpdatePost(post *models.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) ReplaceTags(post *models.Post, tagIDs []uint) error { return nil }

func (r *fakePostRepo) DeletePost(id uint) error {
	if _, ok := r.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) CommentsCount(postID uint) (int64, error) { return 0, nil }

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) addComment(postID, authorID uint, content string) *models.Comment {
	comment := &models.Comment{
		ID:       r.nextID,
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	r.comments[comment.ID] = comment
	r.nextID++
	return comment
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListCommentsByPost(postID uint, page, limit int) ([]models.Comment, int64, error) {
	return nil, 0, nil
}

func (r *fakeCommentRepo) RepliesCount(commentID uint) (int64, error) { return 0, nil }

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	if _, ok := r.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.comments, id)
	return nil
}

type fakeActionRepo struct {
	actions map[string]*models.Action
	nextID  uint
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{actions: make(map[string]*models.Action), nextID: 1}
}

func actionKey(userID uint, actionType models.ActionType, target models.EntityRef) string {
	return fmt.Sprintf("%d|%s|%s|%d", userID, actionType, target.Kind, target.ID)
}

// Toggle mirrors the unique-index insert-or-delete of the real repository.
func (r *fakeActionRepo) Toggle(userID uint, actionType models.ActionType, target models.EntityRef) (models.ToggleStatus, error) {
	key := actionKey(userID, actionType, target)
	if _, ok := r.actions[key]; ok {
		delete(r.actions, key)
		return models.ToggleDeleted, nil
	}
	r.actions[key] = &models.Action{
		ID:         r.nextID,
		UserID:     userID,
		ActionType: actionType,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	return models.ToggleCreated, nil
}

func (r *fakeActionRepo) ListActionsByUser(userID uint) ([]models.Action, error) {
	var out []models.Action
	for _, a := range r.actions {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeActionRepo) CountActions(target models.EntityRef, actionType models.ActionType) (int64, error) {
	var count int64
	for _, a := range r.actions {
		if a.TargetKind == target.Kind && a.TargetID == target.ID && a.ActionType == actionType {
			count++
		}
	}
	return count, nil
}

func (r *fakeActionRepo) HasAction(userID uint, actionType models.ActionType, target models.EntityRef) (bool, error) {
	_, ok := r.actions[actionKey(userID, actionType, target)]
	return ok, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	n.ID = r.nextID
	r.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) ListByRecipient(recipientID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID uint) error {
	for _, n := range r.notifications {
		if n.ID == notificationID {
			n.IsRead = true
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

type fakeConversationRepo struct {
	conversations map[uint]*models.Conversation
	participants  map[uint][]uint
	messages      []*models.PrivateMessage
	nextConvID    uint
	nextMsgID     uint
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uint]*models.Conversation),
		participants:  make(map[uint][]uint),
		nextConvID:    1,
		nextMsgID:     1,
	}
}

func (r *fakeConversationRepo) CreateConversation(participantIDs []uint) (*models.Conversation, error) {
	conversation := &models.Conversation{
		ID:        r.nextConvID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.nextConvID++
	r.conversations[conversation.ID] = conversation
	ids := append([]uint(nil), participantIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	r.participants[conversation.ID] = ids
	return conversation, nil
}

func (r *fakeConversationRepo) GetConversationByID(id uint) (*models.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return conversation, nil
}

func (r *fakeConversationRepo) ListConversationsForUser(userID uint) ([]models.Conversation, error) {
	var out []models.Conversation
	for id, members := range r.participants {
		for _, m := range members {
			if m == userID {
				out = append(out, *r.conversations[id])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeConversationRepo) ParticipantIDs(conversationID uint) ([]uint, error) {
	return r.participants[conversationID], nil
}

func (r *fakeConversationRepo) IsParticipant(conversationID, userID uint) (bool, error) {
	for _, m := range r.participants[conversationID] {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConversationRepo) AddParticipant(conversationID, userID uint) error {
	r.participants[conversationID] = append(r.participants[conversationID], userID)
	return nil
}

func (r *fakeConversationRepo) GetMessageByID(id uint) (*models.PrivateMessage, error) {
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeConversationRepo) AppendMessage(message *models.PrivateMessage) error {
	message.ID = r.nextMsgID
	r.nextMsgID++
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}
	r.messages = append(r.messages, message)

	conversation := r.conversations[message.ConversationID]
	id := message.ID
	conversation.LastMessageID = &id
	conversation.UpdatedAt = message.SentAt
	return nil
}

func (r *fakeConversationRepo) ListMessages(conversationID uint) ([]models.PrivateMessage, error) {
	var out []models.PrivateMessage
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

func (r *fakeConversationRepo) MarkMessageRead(messageID uint) error {
	for _, m := range r.messages {
		if m.ID == messageID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeConversationRepo) MarkAllMessagesRead(conversationID, receiverID uint) error {
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeConversationRepo) SetMessageDeleted(messageID uint, column string) error {
	for _, m := range r.messages {
		if m.ID == messageID {
			switch column {
			case "sender_deleted":
				m.SenderDeleted = true
			case "receiver_deleted":
				m.ReceiverDeleted = true
			}
		}
	}
	return nil
}

// Interface conformance checks.
var (
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
	_ repositories.PostRepository         = (*fakePostRepo)(nil)
	_ repositories.CommentRepository      = (*fakeCommentRepo)(nil)
	_ repositories.ActionRepository       = (*fakeActionRepo)(nil)
	_ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ repositories.ConversationRepository = (*fakeConversationRepo)(nil)
)
