package services

// Services bundles every domain service built on the same Options.
type Services struct {
	Options    Options
	Identity   IdentityProvider
	Users      *UserService
	Auth       *AuthService
	Activities *ActivityService
	Processes  *ProcessService
	Checklists *ChecklistService
	CheckIns   *CheckInService
	Reports    *ReportService
	Dashboard  *DashboardService
	Devices    *DeviceService
	Photos     *PhotoService
}

// New wires the services. uploader may be nil when photo storage is not
// configured.
func New(opts Options, identity IdentityProvider, uploader Uploader) *Services {
	opts = opts.withDefaults()
	s := &Services{Options: opts, Identity: identity}
	s.Users = NewUserService(opts, identity)
	s.Auth = NewAuthService(opts, s.Users, identity)
	s.Activities = NewActivityService(opts)
	s.Processes = NewProcessService(opts)
	s.Checklists = NewChecklistService(opts, s.Users)
	s.CheckIns = NewCheckInService(opts, s.Users)
	s.Reports = NewReportService(opts, s.Users)
	s.Dashboard = NewDashboardService(opts, s.Users, s.CheckIns, s.Checklists)
	s.Devices = NewDeviceService(opts)
	s.Photos = NewPhotoService(opts, uploader)
	return s
}
