package jvmgen

// 运行时辅助类与 Java 平台类
const (
	ListClass      = "List"
	FptrClass      = "Fptr"
	ObjectClass    = "java/lang/Object"
	StringClass    = "java/lang/String"
	ArrayListClass = "java/util/ArrayList"
	SystemClass    = "java/lang/System"
	PrintStream    = "java/io/PrintStream"
)

// BoxMapping 定义 Sophia 基本类型到 JVM 包装类的映射
type BoxMapping struct {
	// WrapperClass 包装类（内部名称格式，如 java/lang/Integer）
	WrapperClass string
	// Primitive JVM 基本类型描述符
	Primitive string
	// UnboxMethod 拆箱方法名
	UnboxMethod string
	// PrintDescriptor 打印时使用的 println 重载
	PrintDescriptor string
}

// BoxMappings 基本类型映射表
var BoxMappings = map[string]*BoxMapping{
	"int": {
		WrapperClass:    "java/lang/Integer",
		Primitive:       "I",
		UnboxMethod:     "intValue",
		PrintDescriptor: "(I)V",
	},
	"bool": {
		WrapperClass:    "java/lang/Boolean",
		Primitive:       "Z",
		UnboxMethod:     "booleanValue",
		PrintDescriptor: "(Z)V",
	},
}

var (
	intBox  = BoxMappings["int"]
	boolBox = BoxMappings["bool"]
)

// ValueOf 装箱方法 Wrapper.valueOf(prim)
func (m *BoxMapping) ValueOf() MethodRef {
	return MethodRef{
		Class:      m.WrapperClass,
		Name:       "valueOf",
		Descriptor: "(" + m.Primitive + ")L" + m.WrapperClass + ";",
	}
}

// Unbox 拆箱方法 wrapper.xxxValue()
func (m *BoxMapping) Unbox() MethodRef {
	return MethodRef{Class: m.WrapperClass, Name: m.UnboxMethod, Descriptor: "()" + m.Primitive}
}

// Println PrintStream.println 对应的重载
func (m *BoxMapping) Println() MethodRef {
	return MethodRef{Class: PrintStream, Name: "println", Descriptor: m.PrintDescriptor}
}

// 运行时辅助类 List / Fptr 与平台方法
var (
	refObjectInit    = MethodRef{ObjectClass, "<init>", "()V"}
	refObjectEquals  = MethodRef{ObjectClass, "equals", "(Ljava/lang/Object;)Z"}
	refArrayListInit = MethodRef{ArrayListClass, "<init>", "()V"}
	refArrayListAdd  = MethodRef{ArrayListClass, "add", "(Ljava/lang/Object;)Z"}

	refListInit = MethodRef{ListClass, "<init>", "(Ljava/util/ArrayList;)V"}
	refListCopy = MethodRef{ListClass, "<init>", "(LList;)V"}
	refListGet  = MethodRef{ListClass, "getElement", "(I)Ljava/lang/Object;"}
	refListSet  = MethodRef{ListClass, "setElement", "(ILjava/lang/Object;)V"}
	refListAdd  = MethodRef{ListClass, "addElement", "(Ljava/lang/Object;)V"}

	refFptrInit   = MethodRef{FptrClass, "<init>", "(Ljava/lang/Object;Ljava/lang/String;)V"}
	refFptrInvoke = MethodRef{FptrClass, "invoke", "(Ljava/util/ArrayList;)Ljava/lang/Object;"}

	refPrintString = MethodRef{PrintStream, "println", "(Ljava/lang/String;)V"}
	refPrintObject = MethodRef{PrintStream, "println", "(Ljava/lang/Object;)V"}

	fieldSystemOut = FieldRef{SystemClass, "out", "Ljava/io/PrintStream;"}
)
