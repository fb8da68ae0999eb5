package order

// Metadata keys stamped onto orders by the store-side issuer plugin and
// by WordPress itself.
const (
	MetaKeyIssuerName = "issuer_name"
	MetaKeyIssuerID   = "issuer_id"
	MetaKeyEditLast   = "_edit_last"
)

// IssuerKind classifies who created the order.
type IssuerKind string

const (
	// IssuerAdmin is an admin user identified by display name.
	IssuerAdmin IssuerKind = "admin"
	// IssuerEditor is an admin user known only by a numeric editor id.
	IssuerEditor IssuerKind = "editor"
	// IssuerCustomer is a self-service online purchase.
	IssuerCustomer IssuerKind = "customer"
)

// IssuerIdentity is the resolved identity attributed to having created
// an order.
type IssuerIdentity struct {
	Kind     IssuerKind
	Name     string
	EditorID string
}

// Display returns the issuer line shown on documents and captions.
func (i IssuerIdentity) Display() string {
	switch i.Kind {
	case IssuerAdmin:
		return i.Name
	case IssuerEditor:
		return "کاربر شماره " + i.EditorID
	default:
		return "مشتری (خرید آنلاین)"
	}
}

// ResolveIssuer derives the issuer identity from order metadata in a
// single pass. An explicit issuer_name entry takes precedence over the
// _edit_last fallback, and the first explicit name is sticky: later
// duplicates of either key do not override it.
func ResolveIssuer(meta []MetaEntry) IssuerIdentity {
	ident := IssuerIdentity{Kind: IssuerCustomer}
	for _, m := range meta {
		switch m.Key {
		case MetaKeyIssuerName:
			if ident.Kind != IssuerAdmin {
				ident.Kind = IssuerAdmin
				ident.Name = m.ValueString()
			}
		case MetaKeyEditLast:
			if ident.Kind == IssuerCustomer {
				ident.Kind = IssuerEditor
				ident.EditorID = m.ValueString()
			}
		}
	}
	return ident
}

// ResolveNotifyTarget returns the lookup key used to find the issuer's
// private notification destination. The plugin-written issuer_id wins;
// _edit_last only fills in when no issuer_id has been seen yet.
func ResolveNotifyTarget(meta []MetaEntry) string {
	target := ""
	for _, m := range meta {
		switch m.Key {
		case MetaKeyIssuerID:
			target = m.ValueString()
		case MetaKeyEditLast:
			if target == "" {
				target = m.ValueString()
			}
		}
	}
	return target
}
