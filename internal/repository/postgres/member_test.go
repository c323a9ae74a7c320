package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/repository/postgres"
)

func TestMemberRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "phone_number", "password_hash", "name", "role", "status", "created_on", "updated_on"}).
			AddRow(1, "m@test.com", "123", "hash", "Member One", "MEMBER", "ACTIVE", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM members WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		member, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, member)
		assert.Equal(t, int32(1), member.ID)
		assert.Equal(t, domain.RoleMember, member.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnError(assert.AnError)

		member, err := repo.GetByID(ctx, 2)
		assert.Error(t, err)
		assert.Nil(t, member)
	})
}

func TestMemberRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := &domain.Member{
			Email:        "new@test.com",
			PhoneNumber:  "456",
			PasswordHash: "hash",
			Name:         "New Member",
			Role:         domain.RoleMember,
			Status:       domain.MemberStatusActive,
		}

		mock.ExpectQuery("INSERT INTO members").
			WithArgs(m.Email, m.PhoneNumber, m.PasswordHash, m.Name, m.Role, m.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, m)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), m.ID)
	})
}

func TestMemberRepository_ListByRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "phone_number", "password_hash", "name", "role", "status", "created_on", "updated_on"}).
			AddRow(1, "admin@test.com", "", "hash", "Admin", "ADMIN", "ACTIVE", time.Now(), time.Now()).
			AddRow(2, "fm@test.com", "", "hash", "Finance", "FINANCE_MANAGER", "ACTIVE", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM members WHERE role = ANY").
			WillReturnRows(rows)

		members, err := repo.ListByRole(ctx, []domain.Role{domain.RoleAdmin, domain.RoleFinanceManager})
		assert.NoError(t, err)
		assert.Len(t, members, 2)
		assert.Equal(t, domain.RoleAdmin, members[0].Role)
		assert.Equal(t, domain.RoleFinanceManager, members[1].Role)
	})
}
