package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ItemOutput is the display state of one URL moving through the pipeline.
type ItemOutput struct {
	ID          int
	URL         string
	Status      string // pending, downloading, skipped, success, error
	Message     string
	Complete    bool
	StartTime   time.Time
	LastUpdated time.Time
	Error       error
}

// Manager renders per-item status lines in place while workers run. It is
// safe for concurrent use from all workers.
type Manager struct {
	outputs   map[int]*ItemOutput
	mutex     sync.RWMutex
	numLines  int
	doneCh    chan struct{}
	tick      time.Duration
	itemCount int
	displayWg sync.WaitGroup
	quiet     bool
}

func NewManager() *Manager {
	return &Manager{
		outputs: make(map[int]*ItemOutput),
		doneCh:  make(chan struct{}),
		tick:    300 * time.Millisecond,
	}
}

// SetQuiet disables the in-place display; only the final summary prints.
func (m *Manager) SetQuiet() {
	m.quiet = true
}

func (m *Manager) Register(url string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.itemCount++
	m.outputs[m.itemCount] = &ItemOutput{
		ID:          m.itemCount,
		URL:         url,
		Status:      "pending",
		StartTime:   time.Now(),
		LastUpdated: time.Now(),
	}
	return m.itemCount
}

func (m *Manager) SetStatus(id int, status string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Status = status
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) SetMessage(id int, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Message = message
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) Complete(id int, status, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		if message == "" {
			message = fmt.Sprintf("Completed %s", info.URL)
		}
		info.Message = message
		info.Status = status
		info.Complete = true
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) ReportError(id int, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Complete = true
		info.Status = "error"
		info.Error = err
		info.Message = err.Error()
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) statusIndicator(status string) string {
	switch status {
	case "success", "skipped":
		return successStyle.Render(StyleSymbols["pass"])
	case "error":
		return errorStyle.Render(StyleSymbols["fail"])
	case "downloading":
		return infoStyle.Render(StyleSymbols["arrow"])
	case "pending":
		return pendingStyle.Render(StyleSymbols["pending"])
	default:
		return infoStyle.Render(StyleSymbols["bullet"])
	}
}

func (m *Manager) sortedItems() []*ItemOutput {
	items := make([]*ItemOutput, 0, len(m.outputs))
	for _, info := range m.outputs {
		items = append(items, info)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

func (m *Manager) updateDisplay() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	availableLines := getTerminalHeight() - 3
	if m.numLines > 0 {
		fmt.Printf("\033[%dA\033[J", m.numLines)
	}

	lineCount := 0
	for _, info := range m.sortedItems() {
		if lineCount >= availableLines {
			break
		}
		elapsed := time.Since(info.StartTime).Round(time.Second)
		if info.Complete {
			elapsed = info.LastUpdated.Sub(info.StartTime).Round(time.Second)
		}
		var styledMessage string
		switch info.Status {
		case "success", "skipped":
			styledMessage = successStyle.Render(info.Message)
		case "error":
			styledMessage = errorStyle.Render(info.Message)
		default:
			styledMessage = pendingStyle.Render(info.Message)
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat(" ", 2),
			m.statusIndicator(info.Status), debugStyle.Render(elapsed.String()), styledMessage)
		fmt.Println(truncateText(line, 2))
		lineCount++
	}
	m.numLines = lineCount
}

func (m *Manager) StartDisplay() {
	if m.quiet {
		return
	}
	m.displayWg.Add(1)
	go func() {
		defer m.displayWg.Done()
		ticker := time.NewTicker(m.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.updateDisplay()
			case <-m.doneCh:
				m.updateDisplay()
				return
			}
		}
	}()
}

func (m *Manager) StopDisplay() {
	if m.quiet {
		return
	}
	close(m.doneCh)
	m.displayWg.Wait()
}
