package repository

import (
	"time"
)

// AnalysisResult is a persisted corneal analysis record. Core fields are
// immutable after creation; the three validation fields are set together,
// once, by the review workflow.
type AnalysisResult struct {
	ID                    string             `gorm:"primaryKey;size:36" json:"id"`
	PatientID             string             `gorm:"column:patient_id;index;size:64" json:"patient_id"`
	UserID                string             `gorm:"column:user_id;index;size:36" json:"user_id"`
	FileName              string             `gorm:"column:file_name;size:255" json:"file_name"`
	AnalysisType          string             `gorm:"column:analysis_type;size:64" json:"analysis_type"`
	Predictions           map[string]float64 `gorm:"column:predictions;serializer:json" json:"predictions"`
	ConfidenceScores      map[string]float64 `gorm:"column:confidence_scores;serializer:json" json:"confidence_scores"`
	ClinicalFindings      []string           `gorm:"column:clinical_findings;serializer:json" json:"clinical_findings"`
	PrimaryDiagnosis      string             `gorm:"column:primary_diagnosis;size:255" json:"primary_diagnosis"`
	ProcessingTimeSeconds float64            `gorm:"column:processing_time_seconds" json:"processing_time_seconds"`
	ModelVersion          string             `gorm:"column:model_version;size:64" json:"model_version"`
	CreatedAt             time.Time          `gorm:"column:created_at" json:"created_at"`
	ValidatedBy           *string            `gorm:"column:validated_by;size:36" json:"validated_by,omitempty"`
	ScientistNotes        *string            `gorm:"column:scientist_notes;type:text" json:"scientist_notes,omitempty"`
	ValidationDate        *time.Time         `gorm:"column:validation_date" json:"validation_date,omitempty"`
}

// TableName overrides the default table name.
func (AnalysisResult) TableName() string {
	return "analysis_results"
}

// Validated reports whether the record has left the pending state.
func (r *AnalysisResult) Validated() bool {
	return r.ValidatedBy != nil
}

// User is an authenticated account with a closed-set role.
type User struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Email     string     `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	Name      string     `gorm:"column:name;size:255" json:"name"`
	Picture   string     `gorm:"column:picture;size:512" json:"picture,omitempty"`
	Role      string     `gorm:"column:role;size:32" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}

// UserSession binds an opaque session token to a user until it expires.
type UserSession struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"column:user_id;index;size:36" json:"user_id"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex;size:255" json:"-"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default table name.
func (UserSession) TableName() string {
	return "user_sessions"
}

// FileRecord tracks an uploaded image artifact.
type FileRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"column:user_id;index;size:36" json:"user_id"`
	FileName   string    `gorm:"column:file_name;size:255" json:"file_name"`
	FileType   string    `gorm:"column:file_type;size:32" json:"file_type"`
	ObjectKey  string    `gorm:"column:object_key;size:255" json:"object_key"`
	PatientID  string    `gorm:"column:patient_id;size:64" json:"patient_id"`
	UploadDate time.Time `gorm:"column:upload_date" json:"upload_date"`
	Status     string    `gorm:"column:status;size:32" json:"status"`
}

// TableName overrides the default table name.
func (FileRecord) TableName() string {
	return "file_records"
}
