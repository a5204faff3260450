//go:build windows

package winplatform

import (
	"fmt"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

// COM bindings for the UI Automation client. The vtable layouts follow
// UIAutomationClient.h; only the methods this package calls are named, but
// every preceding slot must be present so the offsets line up.

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")

	oleaut32          = windows.NewLazySystemDLL("oleaut32.dll")
	procSysFreeString = oleaut32.NewProc("SysFreeString")
)

// UIA pattern identifiers.
const (
	patternInvoke        = 10000
	patternSelectionItem = 10010
	patternToggle        = 10015
)

// UIA tree scopes.
const (
	treeScopeChildren    = 2
	treeScopeDescendants = 4
)

type uiAutomationVtbl struct {
	QueryInterface              uintptr
	AddRef                      uintptr
	Release                     uintptr
	CompareElements             uintptr
	CompareRuntimeIds           uintptr
	GetRootElement              uintptr
	ElementFromHandle           uintptr
	ElementFromPoint            uintptr
	GetFocusedElement           uintptr
	GetRootElementBuildCache    uintptr
	ElementFromHandleBuildCache uintptr
	ElementFromPointBuildCache  uintptr
	GetFocusedElementBuildCache uintptr
	CreateTreeWalker            uintptr
	GetControlViewWalker        uintptr
	GetContentViewWalker        uintptr
	GetRawViewWalker            uintptr
	GetRawViewCondition         uintptr
	GetControlViewCondition     uintptr
	GetContentViewCondition     uintptr
	CreateCacheRequest          uintptr
	CreateTrueCondition         uintptr
}

// uiAutomation wraps IUIAutomation.
type uiAutomation struct {
	vtbl *uiAutomationVtbl
}

type automationElementVtbl struct {
	QueryInterface                 uintptr
	AddRef                         uintptr
	Release                        uintptr
	SetFocus                       uintptr
	GetRuntimeId                   uintptr
	FindFirst                      uintptr
	FindAll                        uintptr
	FindFirstBuildCache            uintptr
	FindAllBuildCache              uintptr
	BuildUpdatedCache              uintptr
	GetCurrentPropertyValue        uintptr
	GetCurrentPropertyValueEx      uintptr
	GetCachedPropertyValue         uintptr
	GetCachedPropertyValueEx       uintptr
	GetCurrentPatternAs            uintptr
	GetCachedPatternAs             uintptr
	GetCurrentPattern              uintptr
	GetCachedPattern               uintptr
	GetCachedParent                uintptr
	GetCachedChildren              uintptr
	GetCurrentProcessId            uintptr
	GetCurrentControlType          uintptr
	GetCurrentLocalizedControlType uintptr
	GetCurrentName                 uintptr
	GetCurrentAcceleratorKey       uintptr
	GetCurrentAccessKey            uintptr
	GetCurrentHasKeyboardFocus     uintptr
	GetCurrentIsKeyboardFocusable  uintptr
	GetCurrentIsEnabled            uintptr
	GetCurrentAutomationId         uintptr
	GetCurrentClassName            uintptr
	GetCurrentHelpText             uintptr
	GetCurrentCulture              uintptr
	GetCurrentIsControlElement     uintptr
	GetCurrentIsContentElement     uintptr
	GetCurrentIsPassword           uintptr
	GetCurrentNativeWindowHandle   uintptr
	GetCurrentItemType             uintptr
	GetCurrentIsOffscreen          uintptr
	GetCurrentOrientation          uintptr
	GetCurrentFrameworkId          uintptr
	GetCurrentIsRequiredForForm    uintptr
	GetCurrentItemStatus           uintptr
	GetCurrentBoundingRectangle    uintptr
}

// automationElement wraps IUIAutomationElement.
type automationElement struct {
	vtbl *automationElementVtbl
}

type elementArrayVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
	GetLength      uintptr
	GetElement     uintptr
}

// elementArray wraps IUIAutomationElementArray.
type elementArray struct {
	vtbl *elementArrayVtbl
}

type patternVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
	// First pattern method: Invoke, Toggle, or Select depending on the
	// pattern interface behind this vtable.
	Action uintptr
}

// actionPattern wraps IUIAutomationInvokePattern, IUIAutomationTogglePattern,
// or IUIAutomationSelectionItemPattern — for all three, the method this
// package needs sits in the first slot after IUnknown.
type actionPattern struct {
	vtbl *patternVtbl
}

// newUIAutomation initializes COM on the calling thread and instantiates the
// UI Automation client.
func newUIAutomation() (*uiAutomation, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			// Code 1 is S_FALSE: COM was already initialized. Anything
			// else is fatal.
			return nil, fmt.Errorf("uia: CoInitializeEx: %w", err)
		}
	}
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, fmt.Errorf("uia: create CUIAutomation: %w", err)
	}
	return (*uiAutomation)(unsafe.Pointer(unk)), nil
}

func hresultErr(op string, hr uintptr) error {
	return fmt.Errorf("uia: %s: %w", op, ole.NewError(hr))
}

func (a *uiAutomation) elementFromHandle(hwnd uintptr) (*automationElement, error) {
	var el *automationElement
	hr, _, _ := syscall.SyscallN(a.vtbl.ElementFromHandle,
		uintptr(unsafe.Pointer(a)), hwnd, uintptr(unsafe.Pointer(&el)))
	if hr != 0 {
		return nil, hresultErr("ElementFromHandle", hr)
	}
	if el == nil {
		return nil, fmt.Errorf("uia: no element for window %#x", hwnd)
	}
	return el, nil
}

// trueCondition returns a condition matching every element. The returned
// pointer is an IUIAutomationCondition and must be released.
func (a *uiAutomation) trueCondition() (*ole.IUnknown, error) {
	var cond *ole.IUnknown
	hr, _, _ := syscall.SyscallN(a.vtbl.CreateTrueCondition,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&cond)))
	if hr != 0 {
		return nil, hresultErr("CreateTrueCondition", hr)
	}
	return cond, nil
}

func (a *uiAutomation) release() {
	syscall.SyscallN(a.vtbl.Release, uintptr(unsafe.Pointer(a)))
}

func (el *automationElement) findAll(scope int, cond *ole.IUnknown) (*elementArray, error) {
	var arr *elementArray
	hr, _, _ := syscall.SyscallN(el.vtbl.FindAll,
		uintptr(unsafe.Pointer(el)), uintptr(scope),
		uintptr(unsafe.Pointer(cond)), uintptr(unsafe.Pointer(&arr)))
	if hr != 0 {
		return nil, hresultErr("FindAll", hr)
	}
	return arr, nil
}

// bstrProperty reads a BSTR-returning typed getter and converts it to a Go
// string, freeing the BSTR.
func (el *automationElement) bstrProperty(op string, slot uintptr) (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(slot,
		uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&bstr)))
	if hr != 0 {
		return "", hresultErr(op, hr)
	}
	if bstr == nil {
		return "", nil
	}
	s := ole.BstrToString(bstr)
	procSysFreeString.Call(uintptr(unsafe.Pointer(bstr)))
	return s, nil
}

func (el *automationElement) currentName() (string, error) {
	return el.bstrProperty("get_CurrentName", el.vtbl.GetCurrentName)
}

func (el *automationElement) currentAutomationID() (string, error) {
	return el.bstrProperty("get_CurrentAutomationId", el.vtbl.GetCurrentAutomationId)
}

func (el *automationElement) currentBoundingRectangle() (rect, error) {
	var r rect
	hr, _, _ := syscall.SyscallN(el.vtbl.GetCurrentBoundingRectangle,
		uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&r)))
	if hr != 0 {
		return rect{}, hresultErr("get_CurrentBoundingRectangle", hr)
	}
	return r, nil
}

// currentPattern returns the requested pattern, or nil when the element does
// not support it.
func (el *automationElement) currentPattern(patternID int) (*actionPattern, error) {
	var unk *ole.IUnknown
	hr, _, _ := syscall.SyscallN(el.vtbl.GetCurrentPattern,
		uintptr(unsafe.Pointer(el)), uintptr(patternID), uintptr(unsafe.Pointer(&unk)))
	if hr != 0 {
		return nil, hresultErr("GetCurrentPattern", hr)
	}
	return (*actionPattern)(unsafe.Pointer(unk)), nil
}

func (el *automationElement) release() {
	if el != nil {
		syscall.SyscallN(el.vtbl.Release, uintptr(unsafe.Pointer(el)))
	}
}

func (arr *elementArray) length() (int, error) {
	var n int32
	hr, _, _ := syscall.SyscallN(arr.vtbl.GetLength,
		uintptr(unsafe.Pointer(arr)), uintptr(unsafe.Pointer(&n)))
	if hr != 0 {
		return 0, hresultErr("get_Length", hr)
	}
	return int(n), nil
}

func (arr *elementArray) element(i int) (*automationElement, error) {
	var el *automationElement
	hr, _, _ := syscall.SyscallN(arr.vtbl.GetElement,
		uintptr(unsafe.Pointer(arr)), uintptr(int32(i)), uintptr(unsafe.Pointer(&el)))
	if hr != 0 {
		return nil, hresultErr("GetElement", hr)
	}
	return el, nil
}

func (arr *elementArray) release() {
	if arr != nil {
		syscall.SyscallN(arr.vtbl.Release, uintptr(unsafe.Pointer(arr)))
	}
}

// act calls the pattern's action method (Invoke/Toggle/Select).
func (p *actionPattern) act() error {
	hr, _, _ := syscall.SyscallN(p.vtbl.Action, uintptr(unsafe.Pointer(p)))
	if hr != 0 {
		return hresultErr("pattern action", hr)
	}
	return nil
}

func (p *actionPattern) release() {
	if p != nil {
		syscall.SyscallN(p.vtbl.Release, uintptr(unsafe.Pointer(p)))
	}
}
