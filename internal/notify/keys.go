package notify

import "github.com/google/uuid"

func CategoryList() []string {
	return []string{"categories", "list"}
}

func Category(id uuid.UUID) []string {
	return []string{"categories", id.String()}
}

func CategoryTransactions(id uuid.UUID) []string {
	return []string{"transactions", "category", id.String()}
}

func AccountList() []string {
	return []string{"accounts", "list"}
}

func AccountTransactions(id uuid.UUID) []string {
	return []string{"transactions", "account", id.String()}
}

func Goal(id uuid.UUID) []string {
	return []string{"goals", id.String()}
}

func PayeeList() []string {
	return []string{"payees", "list"}
}

func UserList() []string {
	return []string{"users", "list"}
}

func MatchRuleList() []string {
	return []string{"match-rules", "list"}
}
