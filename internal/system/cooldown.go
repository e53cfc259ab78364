package system

// CooldownTimer counts down the break between waves.
type CooldownTimer struct {
	duration  float64
	remaining float64
	running   bool
	onExpire  func()
}

func NewCooldownTimer(duration float64, onExpire func()) *CooldownTimer {
	return &CooldownTimer{duration: duration, onExpire: onExpire}
}

// Start restarts the countdown from the full duration.
func (t *CooldownTimer) Start() {
	t.remaining = t.duration
	t.running = true
}

// Stop halts the countdown without firing.
func (t *CooldownTimer) Stop() {
	t.running = false
}

// Skip ends the countdown now.
func (t *CooldownTimer) Skip() {
	if !t.running {
		return
	}
	t.remaining = 0
	t.expire()
}

func (t *CooldownTimer) Update(deltaTime float64) {
	if !t.running {
		return
	}
	t.remaining -= deltaTime
	if t.remaining <= 0 {
		t.remaining = 0
		t.expire()
	}
}

func (t *CooldownTimer) Running() bool      { return t.running }
func (t *CooldownTimer) Remaining() float64 { return t.remaining }

func (t *CooldownTimer) expire() {
	t.running = false
	if t.onExpire != nil {
		t.onExpire()
	}
}
