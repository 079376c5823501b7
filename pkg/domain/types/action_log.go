package types

// ActorType identifies who performed a logged action
type ActorType string

const (
	ActorTypeAgent  ActorType = "agent"
	ActorTypeClient ActorType = "client"
	ActorTypeSystem ActorType = "system"
)

// IsValid checks if the actor type is valid
func (a ActorType) IsValid() bool {
	switch a {
	case ActorTypeAgent, ActorTypeClient, ActorTypeSystem:
		return true
	default:
		return false
	}
}

// ActionCategory groups audit entries on the client timeline
type ActionCategory string

const (
	ActionCategoryAccount       ActionCategory = "account"
	ActionCategoryClaims        ActionCategory = "claims"
	ActionCategoryCommunication ActionCategory = "communication"
	ActionCategoryDocuments     ActionCategory = "documents"
	ActionCategoryNotes         ActionCategory = "notes"
	ActionCategoryWorkflows     ActionCategory = "workflows"
	ActionCategorySystem        ActionCategory = "system"
)

// IsValid checks if the action category is valid
func (c ActionCategory) IsValid() bool {
	switch c {
	case ActionCategoryAccount,
		ActionCategoryClaims,
		ActionCategoryCommunication,
		ActionCategoryDocuments,
		ActionCategoryNotes,
		ActionCategoryWorkflows,
		ActionCategorySystem:
		return true
	default:
		return false
	}
}
