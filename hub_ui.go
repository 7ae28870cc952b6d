package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/templehub/hub"
	"github.com/milk9111/templehub/playlist"
	"golang.org/x/image/font/gofont/goregular"
)

const drawerWidth = 340

var (
	panelColor  = color.NRGBA{R: 0x14, G: 0x12, B: 0x1c, A: 235}
	accentColor = color.NRGBA{R: 0xf5, G: 0xc4, B: 0x58, A: 0xff}
	textColor   = color.NRGBA{R: 0xee, G: 0xea, B: 0xf6, A: 0xff}
	mutedColor  = color.NRGBA{R: 0x9a, G: 0x94, B: 0xaa, A: 0xff}
)

type listEntry struct {
	Index int
	Item  playlist.Item
}

// HubUI is the sidebar drawer plus the always-visible toast and menu
// button, bound to a hub.Hub.
type HubUI struct {
	ui   *ebitenui.UI
	hub  *hub.Hub
	face text.Face

	drawer     *widget.Container
	list       *widget.List
	search     *widget.TextInput
	filters    *widget.RadioGroup
	nowPlaying *widget.Text
	toast      *widget.Text
	gesture    *widget.Text

	entries []any

	// pending is the entry last selected from code. Handlers fire on the
	// next ui.Update, so its echo has to be recognised there.
	pending any
}

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

func newHubTheme(face *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: face,
			EntryColor: &widget.ListEntryColor{
				Unselected:          textColor,
				Selected:            color.Black,
				DisabledUnselected:  mutedColor,
				DisabledSelected:    mutedColor,
				SelectingBackground: color.NRGBA{R: 0x3a, G: 0x34, B: 0x4c, A: 0xff},
				SelectedBackground:  accentColor,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.NRGBA{R: 0x1e, G: 0x1b, B: 0x28, A: 0xff}),
				Mask: solidNineSlice(color.NRGBA{R: 0x1e, G: 0x1b, B: 0x28, A: 0xff}),
			},
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:         solidNineSlice(color.NRGBA{R: 0x2c, G: 0x28, B: 0x3a, A: 0xff}),
				Hover:        solidNineSlice(color.NRGBA{R: 0x3c, G: 0x36, B: 0x50, A: 0xff}),
				Pressed:      solidNineSlice(accentColor),
				PressedHover: solidNineSlice(accentColor),
			},
			TextFace: face,
			TextColor: &widget.ButtonTextColor{
				Idle:    textColor,
				Hover:   textColor,
				Pressed: color.Black,
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(color.NRGBA{R: 0x2c, G: 0x28, B: 0x3a, A: 0xff}),
				Hover: solidNineSlice(color.NRGBA{R: 0x3c, G: 0x36, B: 0x50, A: 0xff}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(mutedColor),
				Hover:   solidNineSlice(textColor),
				Pressed: solidNineSlice(accentColor),
			},
		},
	}
}

// NewHubUI builds the sidebar for h. Call Refresh after the playlist or
// the filter presets change.
func NewHubUI(h *hub.Hub) (*HubUI, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hub ui: load font: %w", err)
	}
	var face text.Face = &text.GoTextFace{Source: src, Size: 15}

	u := &HubUI{ui: &ebitenui.UI{}, hub: h, face: face}
	u.ui.PrimaryTheme = newHubTheme(&u.face)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	menu := widget.NewButton(
		widget.ButtonOpts.Image(u.ui.PrimaryTheme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Playlist (Tab)", &u.face, u.ui.PrimaryTheme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(140, 32),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			u.hub.ToggleDrawer()
		}),
	)

	u.toast = widget.NewText(
		widget.TextOpts.Text("", &u.face, accentColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
		})),
	)

	u.drawer = u.buildDrawer()
	u.drawer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}

	root.AddChild(u.drawer)
	root.AddChild(menu)
	root.AddChild(u.toast)
	u.ui.Container = root

	u.refreshList()
	return u, nil
}

func (u *HubUI) buildDrawer() *widget.Container {
	drawer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(drawerWidth, 0)),
	)
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	drawer.AddChild(widget.NewText(
		widget.TextOpts.Text("Saraswati Hub", &u.face, accentColor),
	))

	drawer.AddChild(u.buildFilters())

	u.search = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(drawerWidth-32, 28), stretch),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.NRGBA{R: 0xf5, G: 0xf3, B: 0xfa, A: 0xff}),
			Disabled: solidNineSlice(color.NRGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(&u.face),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if args.InputText == u.hub.Navigator().Query() {
				return
			}
			u.hub.SetQuery(args.InputText)
			u.refreshList()
		}),
	)
	drawer.AddChild(u.search)

	u.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(listEntry); ok {
				return fmt.Sprintf("%s  [%s]", entry.Item.Title, playlist.TypeBadge(entry.Item.Type))
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if u.pending != nil && args.Entry == u.pending {
				u.pending = nil
				return
			}
			if entry, ok := args.Entry.(listEntry); ok {
				u.hub.Select(entry.Index)
			}
		}),
	)
	u.list.GetWidget().MinHeight = 320
	u.list.GetWidget().LayoutData = widget.RowLayoutData{Stretch: true}
	drawer.AddChild(u.list)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	for _, b := range []struct {
		label string
		fn    func()
	}{
		{"Prev", u.hub.Prev},
		{"Next", u.hub.Next},
	} {
		fn := b.fn
		buttons.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(u.ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(b.label, &u.face, u.ui.PrimaryTheme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 30)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				fn()
			}),
		))
	}
	drawer.AddChild(buttons)

	u.nowPlaying = widget.NewText(widget.TextOpts.Text("", &u.face, textColor))
	drawer.AddChild(u.nowPlaying)

	u.gesture = widget.NewText(widget.TextOpts.Text("", &u.face, mutedColor))
	drawer.AddChild(u.gesture)

	return drawer
}

// buildFilters lays the filter options out as a radio group of toggle
// buttons, three per row.
func (u *HubUI) buildFilters() *widget.Container {
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Spacing(4, 4),
		)),
	)

	nav := u.hub.Navigator()
	options := nav.Options()
	buttons := make([]*widget.Button, 0, len(options))
	elements := make([]widget.RadioGroupElement, 0, len(options))
	for _, opt := range options {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(u.ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(opt.Label, &u.face, u.ui.PrimaryTheme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 28)),
		)
		buttons = append(buttons, btn)
		elements = append(elements, btn)
		grid.AddChild(btn)
	}

	u.filters = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range buttons {
				if args.Active == b {
					if options[i].Name == u.hub.Navigator().Filter() {
						return
					}
					u.hub.SetFilter(options[i].Name)
					u.refreshList()
					return
				}
			}
		}),
	)
	for i, opt := range options {
		if opt.Name == nav.Filter() {
			u.filters.SetActive(buttons[i])
		}
	}
	return grid
}

// Refresh rebuilds the filter buttons and the list from the hub.
func (u *HubUI) Refresh() {
	if u.drawer != nil && u.ui.Container != nil {
		next := u.buildDrawer()
		next.GetWidget().LayoutData = u.drawer.GetWidget().LayoutData
		u.ui.Container.RemoveChild(u.drawer)
		u.ui.Container.AddChild(next)
		u.drawer = next
	}
	u.search.SetText(u.hub.Navigator().Query())
	u.refreshList()
}

func (u *HubUI) refreshList() {
	nav := u.hub.Navigator()
	items := nav.Items()
	u.entries = make([]any, 0, len(items))
	for i, it := range items {
		u.entries = append(u.entries, listEntry{Index: i, Item: it})
	}

	u.list.SetEntries(u.entries)
	u.syncSelection()
}

// syncSelection highlights the navigator's item without replaying it.
func (u *HubUI) syncSelection() {
	i := u.hub.Navigator().Index()
	if i < 0 || i >= len(u.entries) {
		return
	}
	if sel, ok := u.list.SelectedEntry().(listEntry); ok && sel == u.entries[i] {
		return
	}
	u.pending = u.entries[i]
	u.list.SetSelectedEntry(u.entries[i])
}

// Typing reports whether a text field has keyboard focus.
func (u *HubUI) Typing() bool {
	_, ok := u.ui.GetFocusedWidget().(*widget.TextInput)
	return ok
}

// Update syncs labels and visibility with the hub, then runs the widgets.
func (u *HubUI) Update() {
	if u.hub.DrawerOpen() {
		u.drawer.GetWidget().Visibility = widget.Visibility_Show
	} else {
		u.drawer.GetWidget().Visibility = widget.Visibility_Hide
		if u.Typing() {
			u.search.Focus(false)
		}
	}

	if it, ok := u.hub.NowPlaying(); ok {
		u.nowPlaying.Label = "Now playing: " + it.Title
	} else {
		u.nowPlaying.Label = "Nothing to play"
	}
	u.toast.Label = u.hub.ToastText()
	u.gesture.Label = "Gesture: " + u.hub.Gesture()

	u.syncSelection()

	u.ui.Update()
	u.pending = nil
}

// OverDrawer reports whether the cursor is on the open drawer.
func (u *HubUI) OverDrawer() bool {
	if !u.hub.DrawerOpen() {
		return false
	}
	x, y := ebiten.CursorPosition()
	return x >= 0 && x < drawerWidth && y >= 0
}

func (u *HubUI) Draw(screen *ebiten.Image) {
	u.ui.Draw(screen)
}
