package service

import (
	"fmt"
	"testing"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const contactCaptchaSecret = "contact-captcha-secret"

// stubMailer records relayed messages and can be told to fail.
type stubMailer struct {
	sent []string
	fail bool
}

func (m *stubMailer) SendContactMessage(name, email, phone, subject, message string) error {
	if m.fail {
		return fmt.Errorf("smtp unreachable")
	}
	m.sent = append(m.sent, email)
	return nil
}

func setupContactServiceTest(t *testing.T) (ContactService, *stubMailer, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	mail := &stubMailer{}
	contactService := NewContactService(repository.NewContactRepository(testDB), mail, nil, contactCaptchaSecret)
	return contactService, mail, testDB
}

// validContactInput answers a challenge actually issued by the service, the
// way the storefront form does.
func validContactInput(t *testing.T, contactService ContactService) ContactInput {
	t.Helper()

	challenge, err := contactService.NewCaptcha()
	require.NoError(t, err)

	return ContactInput{
		Name:          "Maria Silva",
		Email:         "maria@example.com",
		Phone:         "11987654321",
		Subject:       "Encomenda",
		Message:       "Gostaria de encomendar uma cama sob medida.",
		CaptchaToken:  challenge.Token,
		CaptchaAnswer: challenge.A + challenge.B,
	}
}

func TestContactService_SubmitContact(t *testing.T) {
	contactService, mail, _ := setupContactServiceTest(t)

	message, err := contactService.SubmitContact(validContactInput(t, contactService))
	require.NoError(t, err)

	assert.Equal(t, model.ContactPending, message.Status)
	assert.Equal(t, "Maria Silva", message.Name)
	assert.Equal(t, []string{"maria@example.com"}, mail.sent)
}

func TestContactService_SubmitContact_CaptchaFirst(t *testing.T) {
	contactService, mail, testDB := setupContactServiceTest(t)

	t.Run("Wrong answer", func(t *testing.T) {
		input := validContactInput(t, contactService)
		input.CaptchaAnswer++

		message, err := contactService.SubmitContact(input)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
		assert.Nil(t, message)
	})

	t.Run("Token not issued by this server", func(t *testing.T) {
		// A caller supplying its own operands and sum must not pass.
		input := validContactInput(t, contactService)
		input.CaptchaToken = "MTox.Zm9yZ2Vk"
		input.CaptchaAnswer = 2

		message, err := contactService.SubmitContact(input)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
		assert.Nil(t, message)
	})

	t.Run("Missing token", func(t *testing.T) {
		input := validContactInput(t, contactService)
		input.CaptchaToken = ""

		_, err := contactService.SubmitContact(input)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
	})

	// A failed captcha leaves no trace: nothing stored, nothing relayed.
	var count int64
	require.NoError(t, testDB.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, mail.sent)
}

func TestContactService_SubmitContact_Validation(t *testing.T) {
	contactService, _, _ := setupContactServiceTest(t)

	tests := []struct {
		name   string
		mutate func(*ContactInput)
	}{
		{
			name:   "Missing name",
			mutate: func(in *ContactInput) { in.Name = "" },
		},
		{
			name:   "Missing email",
			mutate: func(in *ContactInput) { in.Email = "" },
		},
		{
			name:   "Missing message",
			mutate: func(in *ContactInput) { in.Message = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validContactInput(t, contactService)
			tt.mutate(&input)

			_, err := contactService.SubmitContact(input)
			assert.ErrorIs(t, err, ErrContactFields)
		})
	}
}

func TestContactService_SubmitContact_MailFailureKeepsMessage(t *testing.T) {
	contactService, mail, testDB := setupContactServiceTest(t)
	mail.fail = true

	message, err := contactService.SubmitContact(validContactInput(t, contactService))
	require.NoError(t, err)
	assert.NotZero(t, message.ID)

	var count int64
	require.NoError(t, testDB.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContactService_ListContacts(t *testing.T) {
	contactService, _, _ := setupContactServiceTest(t)

	first, err := contactService.SubmitContact(validContactInput(t, contactService))
	require.NoError(t, err)

	second := validContactInput(t, contactService)
	second.Email = "joao@example.com"
	_, err = contactService.SubmitContact(second)
	require.NoError(t, err)

	_, err = contactService.UpdateContactStatus(first.ID, model.ContactResolved)
	require.NoError(t, err)

	t.Run("All messages", func(t *testing.T) {
		messages, err := contactService.ListContacts(nil)
		require.NoError(t, err)
		assert.Len(t, messages, 2)
	})

	t.Run("Filtered by status", func(t *testing.T) {
		status := model.ContactPending
		messages, err := contactService.ListContacts(&status)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "joao@example.com", messages[0].Email)
	})

	t.Run("Invalid status", func(t *testing.T) {
		status := model.ContactStatus("arquivado")
		_, err := contactService.ListContacts(&status)
		assert.ErrorIs(t, err, ErrInvalidContactStatus)
	})
}

func TestContactService_UpdateContactStatus(t *testing.T) {
	contactService, _, _ := setupContactServiceTest(t)

	message, err := contactService.SubmitContact(validContactInput(t, contactService))
	require.NoError(t, err)

	updated, err := contactService.UpdateContactStatus(message.ID, model.ContactInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.ContactInProgress, updated.Status)

	t.Run("Invalid status", func(t *testing.T) {
		_, err := contactService.UpdateContactStatus(message.ID, model.ContactStatus("arquivado"))
		assert.ErrorIs(t, err, ErrInvalidContactStatus)
	})

	t.Run("Missing message", func(t *testing.T) {
		_, err := contactService.UpdateContactStatus(9999, model.ContactResolved)
		assert.ErrorIs(t, err, ErrContactNotFound)
	})
}

func TestContactService_GetContactByID(t *testing.T) {
	contactService, _, _ := setupContactServiceTest(t)

	message, err := contactService.SubmitContact(validContactInput(t, contactService))
	require.NoError(t, err)

	found, err := contactService.GetContactByID(message.ID)
	require.NoError(t, err)
	assert.Equal(t, message.Email, found.Email)

	_, err = contactService.GetContactByID(9999)
	assert.ErrorIs(t, err, ErrContactNotFound)
}
