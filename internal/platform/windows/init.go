//go:build windows

package winplatform

import "autoskip/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		reader, err := NewReader()
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			WindowFinder:  NewFinder(),
			TreeReader:    reader,
			Inputter:      NewInputter(),
			Messenger:     NewMessenger(),
			PixelSampler:  NewSampler(),
			FocusManager:  NewFocus(),
			Notifier:      NewNotifier(),
			Screenshotter: NewScreenshotter(),
		}, nil
	}
}
