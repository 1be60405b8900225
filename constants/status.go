package constants

// User roles
const (
	RoleManager      = "manager"
	RoleCollaborator = "collaborator"
	RoleGestor       = "gestor"
	RoleBar          = "bar"
	RolePia          = "pia"
	RoleCozinha      = "cozinha"
	RoleProducao     = "producao"
	RoleGarcon       = "garcon"
)

var Roles = []string{
	RoleManager,
	RoleCollaborator,
	RoleGestor,
	RoleBar,
	RolePia,
	RoleCozinha,
	RoleProducao,
	RoleGarcon,
}

// IsManagerRole reports whether role sees the manager dashboard.
func IsManagerRole(role string) bool {
	return role == RoleManager || role == RoleGestor
}

// Shifts
const (
	ShiftMorning   = "Manhã"
	ShiftAfternoon = "Tarde"
	ShiftNight     = "Noite"
)

var Shifts = []string{ShiftMorning, ShiftAfternoon, ShiftNight}

// ShiftForHour picks the shift a check-in at the given local hour belongs to.
func ShiftForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return ShiftMorning
	case hour >= 12 && hour < 18:
		return ShiftAfternoon
	default:
		return ShiftNight
	}
}

// Activity categories
const (
	CategoryHigiene     = "Higiene"
	CategoryCozinha     = "Cozinha"
	CategoryAtendimento = "Atendimento"
	CategorySeguranca   = "Segurança"
	CategoryOutro       = "Outro"
)

var Categories = []string{
	CategoryHigiene,
	CategoryCozinha,
	CategoryAtendimento,
	CategorySeguranca,
	CategoryOutro,
}

// Activity frequencies
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyMonthly  = "monthly"
	FrequencyOnDemand = "on-demand"
)

var Frequencies = []string{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyOnDemand,
}

// Activity template status
const (
	ActivityStatusActive   = "active"
	ActivityStatusInactive = "inactive"
)

// OneOffTemplateID marks tasks that were not materialized from a template.
const OneOffTemplateID = "one-off"

// OneOffProcessPrefix prefixes the display name of one-off checklists.
const OneOffProcessPrefix = "Tarefa Pontual: "

// DateLayout is the wire and storage format of checklist and check-in dates.
const DateLayout = "2006-01-02"

// UnknownUserName labels report rows whose assignee is not in the directory.
const UnknownUserName = "Unknown"

func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
