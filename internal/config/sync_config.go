package config

import "strings"

const (
	defaultAccountCodes  = "beauty=261,collections=260"
	defaultBillableItems = "Beauty Services (Discounted)|Deposit - Photoshoot Collections"
)

// AccountCodeRule maps a description keyword to a ledger account code.
type AccountCodeRule struct {
	Keyword string
	Code    string
}

type Sync struct{}

var _ SyncConfig = Sync{}

// GetAccountCodeRules returns the keyword rules in the order they were declared.
// Earlier rules take priority.
func (Sync) GetAccountCodeRules() []AccountCodeRule {
	return ParseAccountCodeRules(GetEnv("ACCOUNT_CODES", defaultAccountCodes))
}

func (Sync) GetDefaultAccountCode() string {
	return GetEnv("DEFAULT_ACCOUNT_CODE", "200")
}

func (Sync) GetBillableItems() []string {
	var items []string
	for _, item := range strings.Split(GetEnv("BILLABLE_ITEMS", defaultBillableItems), "|") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (Sync) GetInvoicePrefix() string {
	return GetEnv("INVOICE_PREFIX", "SQUARE")
}

// ParseAccountCodeRules parses "keyword=code,keyword=code". Malformed pairs are skipped.
func ParseAccountCodeRules(raw string) []AccountCodeRule {
	var rules []AccountCodeRule
	for _, pair := range strings.Split(raw, ",") {
		keyword, code, ok := strings.Cut(pair, "=")
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		code = strings.TrimSpace(code)
		if !ok || keyword == "" || code == "" {
			continue
		}
		rules = append(rules, AccountCodeRule{Keyword: keyword, Code: code})
	}
	return rules
}
