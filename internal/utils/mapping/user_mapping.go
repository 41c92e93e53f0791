package mapping

import (
	"database/sql"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	roles := make([]string, len(d.Roles))
	for i, r := range d.Roles {
		roles[i] = string(r)
	}
	m := models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		UniqueCode:     d.UniqueCode,
		Department:     string(d.Department),
		Roles:          roles,
		IsEnabled:      d.IsEnabled,
		SignatureImage: d.SignatureImage,
		DeletedAt:      d.DeletedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.AuthProvider != "" {
		m.AuthProvider = sql.NullString{String: d.AuthProvider, Valid: true}
	}
	if d.ProviderUserID != "" {
		m.ProviderUserID = sql.NullString{String: d.ProviderUserID, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	roles := make([]domain.Role, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = domain.Role(r)
	}
	d := domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		UniqueCode:     m.UniqueCode,
		Department:     domain.Department(m.Department),
		Roles:          roles,
		IsEnabled:      m.IsEnabled,
		SignatureImage: m.SignatureImage,
		DeletedAt:      m.DeletedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.AuthProvider.Valid {
		d.AuthProvider = m.AuthProvider.String
	}
	if m.ProviderUserID.Valid {
		d.ProviderUserID = m.ProviderUserID.String
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
