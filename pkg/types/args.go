package types

// ============================================================================
//                              Arg - 单个参数
// ============================================================================

// Arg 通道参数集中的一项
//
// Value 可以是字符串、整数，或指向共享对象的引用
// （如安全连接器的回指项）。
type Arg struct {
	Key   string
	Value any
}

// ============================================================================
//                              Args - 有序参数集
// ============================================================================

// Args 有序的不可变通道参数集
//
// Args 一经构造不再修改；所有"修改"操作都返回持有独立底层
// 存储的新实例（防御性拷贝），与调用方原有实例互不别名。
// nil *Args 等价于空参数集，所有方法对 nil 接收者安全。
type Args struct {
	list []Arg
}

// NewArgs 从一组参数项构造参数集
//
// 传入的切片会被拷贝，调用方可以继续使用原切片。
func NewArgs(args ...Arg) *Args {
	a := &Args{list: make([]Arg, len(args))}
	copy(a.list, args)
	return a
}

// Len 返回参数项数量
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.list)
}

// Get 按 key 查找参数值
//
// 同名项以最后一项为准（后写覆盖语义）。
func (a *Args) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	for i := len(a.list) - 1; i >= 0; i-- {
		if a.list[i].Key == key {
			return a.list[i].Value, true
		}
	}
	return nil, false
}

// Contains 返回参数集是否含有指定 key
func (a *Args) Contains(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Items 返回参数项的拷贝（保持顺序）
func (a *Args) Items() []Arg {
	if a == nil {
		return nil
	}
	items := make([]Arg, len(a.list))
	copy(items, a.list)
	return items
}

// Copy 返回参数集的独立拷贝
func (a *Args) Copy() *Args {
	return a.CopyAndAdd()
}

// CopyAndAdd 拷贝参数集并在末尾追加若干项
//
// 原实例不受影响；返回的新实例与原实例不共享底层存储。
func (a *Args) CopyAndAdd(extra ...Arg) *Args {
	n := a.Len()
	out := &Args{list: make([]Arg, 0, n+len(extra))}
	if a != nil {
		out.list = append(out.list, a.list...)
	}
	out.list = append(out.list, extra...)
	return out
}
