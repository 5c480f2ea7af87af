// internal/application/usecase/chat_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"homeplate/internal/application/polling"
	"homeplate/internal/domain/actor"
	chatdom "homeplate/internal/domain/chat"
)

// ChatUsecase issues the sendMessage intent for one order's chat session.
// The optimistic local copy enters the projection and the pending set before
// the network call resolves; a failed create removes it again entirely.
type ChatUsecase struct {
	Repo    chatdom.Repository
	Session *polling.Session[chatdom.Message]
	Viewer  *actor.Context

	NewID func() string
	Now   func() time.Time
}

func NewChatUsecase(repo chatdom.Repository, session *polling.Session[chatdom.Message], viewer *actor.Context) *ChatUsecase {
	return &ChatUsecase{
		Repo:    repo,
		Session: session,
		Viewer:  viewer,
		NewID:   uuid.NewString,
		Now:     time.Now,
	}
}

func (u *ChatUsecase) SendMessage(ctx context.Context, orderID, text string) (chatdom.Message, error) {
	if u == nil || u.Repo == nil || u.Session == nil {
		return chatdom.Message{}, errors.New("chat_usecase: not initialized")
	}

	m, err := chatdom.New(u.NewID(), orderID, u.Viewer.ID, u.Viewer.Name, u.Viewer.Role, text, u.Now())
	if err != nil {
		return chatdom.Message{}, err
	}

	// optimistic insertion + pending mark, before the create resolves
	u.Session.Apply(func(p *polling.Projection[chatdom.Message], pending *polling.PendingSet) {
		p.Upsert(m.ID, m)
		pending.Mark(m.ID)
	})

	if err := u.Repo.Create(ctx, m); err != nil {
		// known failure: drop the local copy and clear the mark immediately
		u.Session.Apply(func(p *polling.Projection[chatdom.Message], pending *polling.PendingSet) {
			p.Remove(m.ID)
			pending.Confirm(m.ID)
		})
		return chatdom.Message{}, err
	}

	// known success: bounded grace until a snapshot confirms the id
	u.Session.Pending().MarkSucceeded(m.ID, u.Session.Grace())
	return m, nil
}

// Messages is the read-only ordered view exposed to the UI.
func (u *ChatUsecase) Messages() []chatdom.Message {
	return u.Session.Snapshot()
}
