package constants

const ApiBasePath = "/api/v1"
const BeneficiaryApiPath = "beneficiaries"
const MappingApiPath = "beneficiary-mappings"
const SubmissionApiPath = "submissions"
const ProjectApiPath = "projects"

type contextKey string

const TenantContextKey contextKey = "tenant"
const TraceIDContextKey contextKey = "trace_id"

// Beneficiary status values. Records are never hard-deleted, only flipped
// to inactive.
const (
	BeneficiaryStatusActive   = "active"
	BeneficiaryStatusInactive = "inactive"
)

var AllowedBeneficiaryStatuses = map[string]bool{
	BeneficiaryStatusActive:   true,
	BeneficiaryStatusInactive: true,
}

// Match key strategies. The set is fixed; mapping configurations enabling
// anything outside it are silently narrowed to this set.
const (
	StrategyNationalID = "national_id"
	StrategyPhoneDOB   = "phone_dob"
	StrategyNameDOB    = "name_dob"
)

// RecognizedStrategies lists the fixed strategy set in precedence order,
// most specific first. The order decides which beneficiary wins when
// candidate keys of different strategies resolve to different records.
var RecognizedStrategies = []string{
	StrategyNationalID,
	StrategyPhoneDOB,
	StrategyNameDOB,
}

// Identity attributes carried as independently encrypted fields on a
// beneficiary record.
const (
	AttrFirstName     = "first_name"
	AttrLastName      = "last_name"
	AttrDateOfBirth   = "date_of_birth"
	AttrNationalID    = "national_id"
	AttrPhone         = "phone"
	AttrEmail         = "email"
	AttrAddress       = "address"
	AttrGender        = "gender"
	AttrMunicipality  = "municipality"
	AttrNationality   = "nationality"
	AttrEthnicity     = "ethnicity"
	AttrResidence     = "residence"
	AttrHouseholdSize = "household_members"
)

var IdentityAttributes = []string{
	AttrFirstName,
	AttrLastName,
	AttrDateOfBirth,
	AttrNationalID,
	AttrPhone,
	AttrEmail,
	AttrAddress,
	AttrGender,
	AttrMunicipality,
	AttrNationality,
	AttrEthnicity,
	AttrResidence,
	AttrHouseholdSize,
}

// Audit actions persisted to the audit_logs table.
const (
	AuditActionPIIRead           = "PII_READ"
	AuditActionPIIListRead       = "PII_LIST_READ"
	AuditActionPIIAggregate      = "PII_AGGREGATE"
	AuditActionBeneficiaryCreate = "BENEFICIARY_CREATE"
	AuditActionBeneficiaryUpdate = "BENEFICIARY_UPDATE"
	AuditActionStatusChange      = "BENEFICIARY_STATUS_CHANGE"
)

// Project status values.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Response headers signalling how PII was handled for the request.
const (
	HeaderPIIAccess        = "X-PII-Access"
	PIIAccessDecrypted     = "decrypted"
	PIIAccessEncryptedOnly = "encrypted-only"
)
