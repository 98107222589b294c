// Package vtree defines the immutable view-tree node type the application's
// view function produces each frame, and the closed set of node kinds the
// rest of the engine (reconciler, layout, focus, input, drawlist) switches
// on: a single tagged-union node (in place of one Go type per widget kind)
// whose props are validated once at measure/layout entry.
package vtree

// Kind is a closed set of VNode kinds. Adding a new kind requires adding
// validation in Props.Validate and, for specialized kinds, support in
// pkg/layout, pkg/focusmgr, and pkg/input.
type Kind int

const

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindText: "text",
	KindRow: "row",
	KindColumn: "column",
	KindBox: "box",
	KindButton: "button",
	KindInput: "input",
	KindGrid: "grid",
	KindTable: "table",
	KindTree: "tree",
	KindVirtualList: "virtualList",
	KindFocusZone: "focusZone",
	KindFocusTrap: "focusTrap",
	KindModal: "modal",
	KindLayer: "layer",
	KindDropdown: "dropdown",
	KindTabs: "tabs",
	KindAccordion: "accordion",
	KindTransitionFade: "transitionFade",
	KindTransitionSlide: "transitionSlide",
	KindChart: "chart",
	KindDivider: "divider",
	KindSpacer: "spacer",
	KindImage: "image",
	KindIcon: "icon",
	KindBadge: "badge",
	KindTooltip: "tooltip",
	KindProgressBar: "progressBar",
	KindSpinner: "spinner",
	KindCheckbox: "checkbox",
	KindRadio: "radio",
	KindSwitchToggle: "switchToggle",
	KindSlider: "slider",
	KindCodeEditor: "codeEditor",
	KindScrollArea: "scrollArea",
	KindSplitPane: "splitPane",
	KindStatusBar: "statusBar",
	KindToolbar: "toolbar",
	KindMenu: "menu",
	KindMenuItem: "menuItem",
	KindContextMenu: "contextMenu",
	KindBreadcrumbs: "breadcrumbs",
	KindPagination: "pagination",
	KindAvatar: "avatar",
	KindCard: "card",
	KindPanel: "panel",
	KindCollapsible: "collapsible",
	KindStepper: "stepper",
	KindRating: "rating",
	KindColorPicker: "colorPicker",
	KindDatePicker: "datePicker",
	KindTimePicker: "timePicker",
	KindFileTree: "fileTree",
	KindLogViewer: "logViewer",
	KindDiffView: "diffView",
	KindMarkdown: "markdown",
	KindCodeBlock: "codeBlock",
	KindKbd: "kbd",
	KindChip: "chip",
	KindTag: "tag",
	KindNotification: "notification",
	KindToast: "toast",
	KindBanner: "banner",
	KindEmptyState: "emptyState",
	KindSkeleton: "skeleton",
	KindResizeHandle: "resizeHandle",
	KindErrorBoundary: "errorBoundary",
}

// String returns the wire/debug name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Valid reports whether k is a member of the closed set (excluding KindUnknown).
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindSentinel
}

// IsScrollable reports whether this kind's layout produces overflow metadata.
func (k Kind) IsScrollable() bool {
	switch k {
	case KindScrollArea, KindVirtualList, KindTree, KindTable, KindFileTree, KindLogViewer, KindCodeEditor, KindMarkdown:
		return true
	default:
		return false
	}
}

// IsFocusable reports whether this kind can be a focus-traversal leaf by default.
func (k Kind) IsFocusable() bool {
	switch k {
	case KindButton, KindInput, KindDropdown, KindCheckbox, KindRadio, KindSwitchToggle,
		KindSlider, KindTabs, KindTree, KindVirtualList, KindCodeEditor, KindMenuItem,
		KindDatePicker, KindTimePicker, KindColorPicker, KindFileTree, KindStepper, KindRating:
		return true
	default:
		return false
	}
}
