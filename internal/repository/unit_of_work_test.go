//go:build integration

package repository_test

import (
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
)

var _ = Describe("UnitOfWork", func() {
	newUser := func(email string) *models.User {
		return &models.User{ID: uuid.New(), Email: email, FullName: "Test User", Password: "x", Role: models.RoleUser}
	}

	It("persists nothing until Complete", func() {
		uow := repository.NewUnitOfWork(env.db)
		user := newUser("staged@example.com")
		uow.Users().Add(user)

		_, err := repository.NewUnitOfWork(env.db).Users().Get(env.ctx, user.ID)
		Expect(err).To(MatchError(repository.ErrNotFound))

		n, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))

		got, err := repository.NewUnitOfWork(env.db).Users().GetByEmail(env.ctx, "staged@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ID).To(Equal(user.ID))
	})

	It("returns zero when nothing was staged", func() {
		n, err := repository.NewUnitOfWork(env.db).Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("writes updates and creates in one transaction", func() {
		user := newUser("both@example.com")
		seed := repository.NewUnitOfWork(env.db)
		seed.Users().Add(user)
		_, err := seed.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())

		uow := repository.NewUnitOfWork(env.db)
		user.FullName = "Renamed"
		uow.Users().Update(user)
		uow.Activities().Add(&models.Activity{ID: uuid.New(), Type: models.ActivityAdminAction, CreatedAt: time.Now()})
		n, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(2)))
	})

	It("rolls back the whole batch on a unique violation", func() {
		seed := repository.NewUnitOfWork(env.db)
		seed.Users().Add(newUser("dup@example.com"))
		_, err := seed.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())

		uow := repository.NewUnitOfWork(env.db)
		uow.Users().Add(newUser("fresh@example.com"))
		uow.Users().Add(newUser("dup@example.com"))
		_, err = uow.Complete(env.ctx)
		Expect(err).To(MatchError(repository.ErrDuplicate))

		_, err = repository.NewUnitOfWork(env.db).Users().GetByEmail(env.ctx, "fresh@example.com")
		Expect(err).To(MatchError(repository.ErrNotFound))
	})

	It("discards staged changes on Close", func() {
		uow := repository.NewUnitOfWork(env.db)
		uow.Users().Add(newUser("closed@example.com"))
		uow.Close()
		n, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})
})

var _ = Describe("PasswordResetTokenRepository", func() {
	It("only returns unused, unexpired tokens", func() {
		now := time.Now().UTC()
		uow := repository.NewUnitOfWork(env.db)
		uow.PasswordResetTokens().Add(&models.PasswordResetToken{ID: uuid.New(), Email: "a@example.com", Token: "111111", ExpiryDate: now.Add(-time.Minute), CreatedAt: now.Add(-61 * time.Minute)})
		uow.PasswordResetTokens().Add(&models.PasswordResetToken{ID: uuid.New(), Email: "a@example.com", Token: "222222", ExpiryDate: now.Add(time.Hour), IsUsed: true, CreatedAt: now.Add(-5 * time.Minute)})
		uow.PasswordResetTokens().Add(&models.PasswordResetToken{ID: uuid.New(), Email: "a@example.com", Token: "333333", ExpiryDate: now.Add(50 * time.Minute), CreatedAt: now.Add(-10 * time.Minute)})
		_, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())

		repo := repository.NewUnitOfWork(env.db).PasswordResetTokens()
		valid, err := repo.ListValidByEmail(env.ctx, "a@example.com", now)
		Expect(err).NotTo(HaveOccurred())
		Expect(valid).To(HaveLen(1))
		Expect(valid[0].Token).To(Equal("333333"))

		_, err = repo.GetValidByEmailAndCode(env.ctx, "a@example.com", "222222", now)
		Expect(err).To(MatchError(repository.ErrNotFound))
	})
})

var _ = Describe("PasswordResetAttemptRepository", func() {
	It("counts attempts inside the window", func() {
		now := time.Now().UTC()
		uow := repository.NewUnitOfWork(env.db)
		for i := 0; i < 3; i++ {
			uow.PasswordResetAttempts().Add(&models.PasswordResetAttempt{
				ID: uuid.New(), Email: "a@example.com", IPAddress: "10.0.0.1",
				AttemptType: models.AttemptSendCode, AttemptTime: now.Add(-time.Duration(i*40) * time.Minute),
			})
		}
		_, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())

		n, err := repository.NewUnitOfWork(env.db).PasswordResetAttempts().Count(env.ctx, repository.AttemptQuery{
			Email: "a@example.com", AttemptType: models.AttemptSendCode, Since: now.Add(-time.Hour),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(2)))
	})
})

var _ = Describe("DentalTrackingRepository", func() {
	It("finds a record by calendar day", func() {
		userID := uuid.New()
		uow := repository.NewUnitOfWork(env.db)
		uow.DentalTrackings().Add(&models.DentalTracking{ID: uuid.New(), UserID: userID, Date: models.Day(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)), MorningBrushing: true})
		_, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())

		got, err := repository.NewUnitOfWork(env.db).DentalTrackings().GetByUserAndDate(env.ctx, userID, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())
		Expect(got.MorningBrushing).To(BeTrue())
	})
})

var _ = Describe("DoctorRepository", func() {
	It("stores an unavailable doctor as unavailable", func() {
		doctor := &models.Doctor{ID: uuid.New(), Name: "Ayşe Demir", Email: "ayse@example.com", Password: "x", Role: models.RoleDoctor}
		uow := repository.NewUnitOfWork(env.db)
		uow.Doctors().Add(doctor)
		_, err := uow.Complete(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(doctor.IsAvailable).To(BeFalse())

		got, err := repository.NewUnitOfWork(env.db).Doctors().Get(env.ctx, doctor.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.IsAvailable).To(BeFalse())
	})
})
