// Package types defines the wire-level shapes the query engine exchanges
// with its host: records, the query AST, and match results. Field names
// and JSON tags follow the camelCase wire schema the host speaks.
package types

// ElementRole is one of the closed set of accessibility-style role
// categories a NodeRecord may carry. The set is fixed at 41 values,
// serialized lowercase, carried verbatim from the reference
// implementation's ElementRole enum.
type ElementRole string

const (
	RoleButton       ElementRole = "button"
	RoleLink         ElementRole = "link"
	RoleTextbox      ElementRole = "textbox"
	RoleCheckbox     ElementRole = "checkbox"
	RoleRadio        ElementRole = "radio"
	RoleCombobox     ElementRole = "combobox"
	RoleListbox      ElementRole = "listbox"
	RoleOption       ElementRole = "option"
	RoleMenu         ElementRole = "menu"
	RoleMenuitem     ElementRole = "menuitem"
	RoleTab          ElementRole = "tab"
	RoleTabpanel     ElementRole = "tabpanel"
	RoleDialog       ElementRole = "dialog"
	RoleAlertdialog  ElementRole = "alertdialog"
	RoleSwitch       ElementRole = "switch"
	RoleSlider       ElementRole = "slider"
	RoleSpinbutton   ElementRole = "spinbutton"
	RoleSearchbox    ElementRole = "searchbox"
	RoleHeading      ElementRole = "heading"
	RoleImage        ElementRole = "image"
	RoleNavigation   ElementRole = "navigation"
	RoleMain         ElementRole = "main"
	RoleRegion       ElementRole = "region"
	RoleForm         ElementRole = "form"
	RoleGrid         ElementRole = "grid"
	RoleGridcell     ElementRole = "gridcell"
	RoleRow          ElementRole = "row"
	RoleRowgroup     ElementRole = "rowgroup"
	RoleCell         ElementRole = "cell"
	RoleColumnheader ElementRole = "columnheader"
	RoleRowheader    ElementRole = "rowheader"
	RoleTree         ElementRole = "tree"
	RoleTreeitem     ElementRole = "treeitem"
	RoleTooltip      ElementRole = "tooltip"
	RoleStatus       ElementRole = "status"
	RoleAlert        ElementRole = "alert"
	RoleProgressbar  ElementRole = "progressbar"
	RoleSeparator    ElementRole = "separator"
	RoleGroup        ElementRole = "group"
	RoleArticle      ElementRole = "article"
	RoleGeneric      ElementRole = "generic"
)

var validRoles = map[ElementRole]struct{}{
	RoleButton: {}, RoleLink: {}, RoleTextbox: {}, RoleCheckbox: {}, RoleRadio: {},
	RoleCombobox: {}, RoleListbox: {}, RoleOption: {}, RoleMenu: {}, RoleMenuitem: {},
	RoleTab: {}, RoleTabpanel: {}, RoleDialog: {}, RoleAlertdialog: {}, RoleSwitch: {},
	RoleSlider: {}, RoleSpinbutton: {}, RoleSearchbox: {}, RoleHeading: {}, RoleImage: {},
	RoleNavigation: {}, RoleMain: {}, RoleRegion: {}, RoleForm: {}, RoleGrid: {},
	RoleGridcell: {}, RoleRow: {}, RoleRowgroup: {}, RoleCell: {}, RoleColumnheader: {},
	RoleRowheader: {}, RoleTree: {}, RoleTreeitem: {}, RoleTooltip: {}, RoleStatus: {},
	RoleAlert: {}, RoleProgressbar: {}, RoleSeparator: {}, RoleGroup: {}, RoleArticle: {},
	RoleGeneric: {},
}

// Valid reports whether r is a member of the closed role enumeration.
func (r ElementRole) Valid() bool {
	_, ok := validRoles[r]
	return ok
}

// clickableRoles, typeableRoles, checkableRoles and selectableRoles back
// the derived actionability flags in a MatchResult. Membership is carried
// verbatim from the reference implementation's record_to_match.
var (
	clickableRoles = map[ElementRole]struct{}{
		RoleButton: {}, RoleLink: {}, RoleTab: {}, RoleMenuitem: {},
		RoleOption: {}, RoleCheckbox: {}, RoleRadio: {}, RoleSwitch: {},
	}
	typeableRoles = map[ElementRole]struct{}{
		RoleTextbox: {}, RoleSearchbox: {}, RoleCombobox: {}, RoleSpinbutton: {},
	}
	checkableRoles = map[ElementRole]struct{}{
		RoleCheckbox: {}, RoleRadio: {}, RoleSwitch: {},
	}
	selectableRoles = map[ElementRole]struct{}{
		RoleOption: {}, RoleTab: {}, RoleTreeitem: {}, RoleGridcell: {},
	}
)

// IsClickable, IsTypeable, IsCheckable and IsSelectable report the role's
// membership in each actionability category. They back MatchResult's
// derived Actionability, regardless of the record's current visible/enabled
// state.
func (r ElementRole) IsClickable() bool   { _, ok := clickableRoles[r]; return ok }
func (r ElementRole) IsTypeable() bool    { _, ok := typeableRoles[r]; return ok }
func (r ElementRole) IsCheckable() bool   { _, ok := checkableRoles[r]; return ok }
func (r ElementRole) IsSelectable() bool  { _, ok := selectableRoles[r]; return ok }
