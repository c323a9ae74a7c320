package postgres

import (
	"database/sql"

	"memberfund-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.PaymentRepository
	repository.QueueRepository
	repository.ProposalRepository
	repository.WorkflowRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MemberRepository:       NewMemberRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		QueueRepository:        NewQueueRepository(db),
		ProposalRepository:     NewProposalRepository(db),
		WorkflowRepository:     NewWorkflowRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
