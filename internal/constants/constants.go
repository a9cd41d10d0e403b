package constants

// 滑动方向
const (
	SwipeDirectionLeft  = "left"
	SwipeDirectionRight = "right"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskVerificationEmail = "email:verification"
	TaskWelcomeEmail      = "email:welcome"
)

// 发现页默认每页候选人数
const DefaultFeedPageSize = 20
