//go:build windows

package winplatform

import "fmt"

// Notifier plays the system information sound. An audible cue is the only
// notification channel that cannot raise a window over the user's dictation.
type Notifier struct{}

func NewNotifier() *Notifier { return &Notifier{} }

func (n *Notifier) Notify(message string) error {
	ret, _, _ := procMessageBeep.Call(uintptr(mbIconInformation))
	if ret == 0 {
		return fmt.Errorf("message beep failed")
	}
	return nil
}
