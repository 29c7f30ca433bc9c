package domain

// FileFormat is the container family of an uploaded workbook.
type FileFormat string

const (
	FileFormatXLSX FileFormat = "xlsx"
	FileFormatXLS  FileFormat = "xls"
)

// AllowedFileFormats maps FileFormat to its MIME content type.
var AllowedFileFormats = map[FileFormat]string{
	FileFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FileFormatXLS:  "application/vnd.ms-excel",
}

// AllowedExtensions maps file extensions (without dot) to FileFormat.
var AllowedExtensions = map[string]FileFormat{
	"xlsx": FileFormatXLSX,
	"xlsm": FileFormatXLSX,
	"xls":  FileFormatXLS,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidRoles lists the roles a token may carry.
var ValidRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// AnalysisStatus represents the lifecycle of an uploaded workbook analysis.
type AnalysisStatus string

const (
	AnalysisStatusPending   AnalysisStatus = "pending"
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
	AnalysisStatusDeleted   AnalysisStatus = "deleted"
)
