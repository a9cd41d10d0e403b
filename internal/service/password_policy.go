package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/heartlink/internal/config"
)

// passwordSpecialChars 特殊字符集合
const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// emailPattern 宽松校验：非空本地段 @ 非空域名段 . 非空后缀
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordPolicyError 聚合全部不满足的规则，一次性返回给客户端
type passwordPolicyError struct {
	violations []string
}

func (e passwordPolicyError) Error() string {
	return strings.Join(e.violations, "; ")
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Violations 返回全部违规描述
func (e passwordPolicyError) Violations() []string {
	return e.violations
}

// validatePassword 按策略校验密码。
// 不在第一条失败时短路，而是收集所有违规后统一返回，
// 客户端一次就能看到全部需要修正的规则。
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	var violations []string
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters long", policy.MinLength))
	}
	if policy.RequireUpper && !hasUpper {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if policy.RequireLower && !hasLower {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if policy.RequireNumber && !hasNumber {
		violations = append(violations, "Password must contain at least one number")
	}
	if policy.RequireSpecial && !hasSpecial {
		violations = append(violations, "Password must contain at least one special character")
	}

	if len(violations) > 0 {
		return passwordPolicyError{violations: violations}
	}
	return nil
}

// validateEmail 校验邮箱格式
func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
