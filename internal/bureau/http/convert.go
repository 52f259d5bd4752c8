package http

import (
	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/pkg/bureausdk"
)

func toSDKSlots(slots []domain.TimeSlot) []bureausdk.TimeSlot {
	out := make([]bureausdk.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, bureausdk.TimeSlot{Date: s.Date, Time: s.Time})
	}
	return out
}

func fromSDKSlots(slots []bureausdk.TimeSlot) []domain.TimeSlot {
	if slots == nil {
		return nil
	}
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.TimeSlot{Date: s.Date, Time: s.Time})
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toSDKConsultation(c domain.Consultation) bureausdk.Consultation {
	out := bureausdk.Consultation{
		ID:                  c.ID,
		FullName:            c.FullName,
		Email:               c.Email,
		Phone:               c.Phone,
		LinkedInURL:         c.LinkedInURL,
		RoleTargets:         orEmpty(c.RoleTargets),
		LocationPreferences: orEmpty(c.LocationPreferences),
		MinimumSalary:       c.MinimumSalary,
		TargetMarket:        c.TargetMarket,
		EmploymentStatus:    c.EmploymentStatus,
		PackageInterest:     c.PackageInterest,
		AreaOfConcern:       c.AreaOfConcern,
		ConsultationWindow:  c.ConsultationWindow,
		Message:             c.Message,
		ProposedSlots:       toSDKSlots(c.ProposedSlots),
		Status:              string(c.Status),
		StatusReason:        c.StatusReason,
		AllowedStatuses:     []string{},
		Payment: bureausdk.Payment{
			Method:      c.Payment.Method,
			Amount:      c.Payment.Amount,
			Reference:   c.Payment.Reference,
			Verified:    c.Payment.Verified,
			VerifiedAt:  c.Payment.VerifiedAt,
			VerifiedBy:  c.Payment.VerifiedBy,
			PackageTier: c.Payment.PackageTier,
		},
		Registration: bureausdk.Registration{
			Issued:    c.Registration.Issued(),
			ExpiresAt: c.Registration.ExpiresAt,
			Used:      c.Registration.Used,
			UsedAt:    c.Registration.UsedAt,
		},
		ConfirmedSlotIndex: c.ConfirmedSlotIndex,
		MeetingLink:        c.MeetingLink,
		AdminNotes:         c.AdminNotes,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	for _, st := range domain.AllowedTargets(c.Status) {
		out.AllowedStatuses = append(out.AllowedStatuses, string(st))
	}
	if slot, ok := c.ConfirmedSlot(); ok {
		out.ConfirmedSlot = &bureausdk.TimeSlot{Date: slot.Date, Time: slot.Time}
	}
	return out
}

func toSDKContact(c domain.ContactRequest) bureausdk.Contact {
	return bureausdk.Contact{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
