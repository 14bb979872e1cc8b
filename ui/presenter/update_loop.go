package presenter

// Loop aggregates the tool presenters and drives periodic updates.
//
// It applies finished loads on the UI thread and invokes a scheduler
// callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Crop     *CropPresenter
	Rotate   *RotatePresenter
	Schedule func()
}

func NewLoop(crop *CropPresenter, rot *RotatePresenter, schedule func()) *Loop {
	return &Loop{Crop: crop, Rotate: rot, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.Crop.Tick()
	l.Rotate.Tick()
	if l.Schedule != nil {
		l.Schedule()
	}
}
