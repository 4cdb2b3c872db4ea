package models

import (
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// DoctorResponse публичный профиль врача
type DoctorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty,omitempty"`
}

// DoctorListResponse список врачей
type DoctorListResponse struct {
	Doctors []*DoctorResponse `json:"doctors"`
}

// AvailabilityResponse окно доступности врача
type AvailabilityResponse struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// AvailabilityListResponse список окон доступности
type AvailabilityListResponse struct {
	Slots []*AvailabilityResponse `json:"slots"`
}

// FromDomainUser конвертирует domain модель врача в response
func FromDomainUser(u *domain.User) *DoctorResponse {
	return &DoctorResponse{
		ID:        u.ID,
		Name:      u.Name,
		Specialty: u.Specialty,
	}
}

// FromDomainUserList конвертирует список врачей в response
func FromDomainUserList(users []*domain.User) *DoctorListResponse {
	result := make([]*DoctorResponse, 0, len(users))
	for _, u := range users {
		result = append(result, FromDomainUser(u))
	}
	return &DoctorListResponse{Doctors: result}
}

// FromDomainAvailabilityList конвертирует окна доступности в response
func FromDomainAvailabilityList(avs []*domain.Availability) *AvailabilityListResponse {
	result := make([]*AvailabilityResponse, 0, len(avs))
	for _, av := range avs {
		result = append(result, &AvailabilityResponse{
			ID:        av.ID,
			StartTime: av.StartTime,
			EndTime:   av.EndTime,
			Status:    string(av.Status),
		})
	}
	return &AvailabilityListResponse{Slots: result}
}
