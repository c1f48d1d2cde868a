// version.go - 编译器版本与版本约束
//
// 项目可以在 sophia.toml 中用 build.requires 声明需要的编译器版本，
// 加载配置时与 CompilerVersion 比对。
//
// 版本格式：MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]

package pkg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CompilerVersion 当前编译器版本
const CompilerVersion = "0.1.0"

// Version 语义化版本
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

var (
	versionRegex = regexp.MustCompile(
		`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)
	constraintSep = regexp.MustCompile(`[,\s]+`)
)

// ParseVersion 解析版本字符串
func ParseVersion(s string) (*Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid version: %s", s)
	}
	v := &Version{Prerelease: m[4], Build: m[5]}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	v.Patch, _ = strconv.Atoi(m[3])
	return v, nil
}

// MustParseVersion 解析失败时 panic，只用于常量
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValidVersion 检查是否是有效的版本字符串
func IsValidVersion(s string) bool {
	return versionRegex.MatchString(s)
}

// String 转换为字符串
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Compare 比较两个版本，构建元数据不参与比较
// 返回：-1 (v < other), 0 (v == other), 1 (v > other)
func (v *Version) Compare(other *Version) int {
	for _, d := range [...]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d != 0 {
			return sign(d)
		}
	}

	// 没有预发布标识的版本优先级更高
	switch {
	case v.Prerelease == other.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	}
	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// comparePrerelease 逐段比较预发布标识
func comparePrerelease(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := compareIdentifier(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	// 前缀相同时段数多的更大
	return sign(len(pa) - len(pb))
}

// compareIdentifier 数字段按数值比较，且小于非数字段
func compareIdentifier(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return sign(na - nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// ============================================================================
// 版本约束
// ============================================================================

// Constraint 单个约束
type Constraint struct {
	op      string
	version *Version
}

// ConstraintSet 约束集合，全部满足才算满足
type ConstraintSet struct {
	constraints []*Constraint
}

// ParseConstraint 解析版本约束
// 支持的格式（多个约束用空格或逗号分隔）：
//   - "1.2.3" 或 "=1.2.3" 精确匹配
//   - ">=1.2.3" "<=1.2.3" ">1.2.3" "<1.2.3"
//   - "^1.2.3" 同主版本号
//   - "~1.2.3" 同主次版本号
func ParseConstraint(s string) (*ConstraintSet, error) {
	cs := &ConstraintSet{}
	for _, part := range constraintSep.Split(strings.TrimSpace(s), -1) {
		if part == "" {
			continue
		}
		op := "="
		for _, prefix := range [...]string{">=", "<=", ">", "<", "^", "~", "="} {
			if strings.HasPrefix(part, prefix) {
				op, part = prefix, part[len(prefix):]
				break
			}
		}
		v, err := ParseVersion(part)
		if err != nil {
			return nil, err
		}
		cs.constraints = append(cs.constraints, &Constraint{op: op, version: v})
	}
	if len(cs.constraints) == 0 {
		return nil, fmt.Errorf("empty version constraint")
	}
	return cs, nil
}

// Check 检查版本是否满足约束集
func (cs *ConstraintSet) Check(v *Version) bool {
	for _, c := range cs.constraints {
		if !c.check(v) {
			return false
		}
	}
	return true
}

func (c *Constraint) check(v *Version) bool {
	cmp := v.Compare(c.version)
	switch c.op {
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case "^":
		return v.Major == c.version.Major && cmp >= 0
	case "~":
		return v.Major == c.version.Major && v.Minor == c.version.Minor && cmp >= 0
	}
	return cmp == 0
}

// String 转换为字符串
func (cs *ConstraintSet) String() string {
	parts := make([]string, len(cs.constraints))
	for i, c := range cs.constraints {
		parts[i] = c.op + c.version.String()
	}
	return strings.Join(parts, " ")
}
