package mython

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestArithmeticAndPrint(t *testing.T) {
	src := "x = 1 + 2 * 3\n" +
		"print x\n"
	if got := runProgram(t, src); got != "7\n" {
		t.Fatalf("got %q, want %q", got, "7\n")
	}
}

func TestClassWithInitAndMethod(t *testing.T) {
	src := "class Point:\n" +
		"  def __init__(self, x, y):\n" +
		"    self.x = x\n" +
		"    self.y = y\n" +
		"  def sum(self):\n" +
		"    return self.x + self.y\n" +
		"p = Point(3, 4)\n" +
		"print p.sum()\n"
	if got := runProgram(t, src); got != "7\n" {
		t.Fatalf("got %q, want %q", got, "7\n")
	}
}

func TestInheritanceAndOverride(t *testing.T) {
	src := "class A:\n" +
		"  def greet(self):\n" +
		"    return \"A\"\n" +
		"class B(A):\n" +
		"  def greet(self):\n" +
		"    return \"B\"\n" +
		"print A().greet(), B().greet()\n"
	if got := runProgram(t, src); got != "A B\n" {
		t.Fatalf("got %q, want %q", got, "A B\n")
	}
}

func TestStrHookAndStringification(t *testing.T) {
	src := "class Box:\n" +
		"  def __init__(self, v):\n" +
		"    self.v = v\n" +
		"  def __str__(self):\n" +
		"    return self.v\n" +
		"print Box(\"hi\")\n"
	if got := runProgram(t, src); got != "hi\n" {
		t.Fatalf("got %q, want %q", got, "hi\n")
	}
}

func TestTruthinessControlFlow(t *testing.T) {
	src := "x = 0\n" +
		"if x:\n" +
		"  print \"t\"\n" +
		"else:\n" +
		"  print \"f\"\n"
	if got := runProgram(t, src); got != "f\n" {
		t.Fatalf("got %q, want %q", got, "f\n")
	}
}

func TestEarlyReturn(t *testing.T) {
	src := "class C:\n" +
		"  def f(self, x):\n" +
		"    if x:\n" +
		"      return 1\n" +
		"    return 2\n" +
		"print C().f(1), C().f(0)\n"
	if got := runProgram(t, src); got != "1 2\n" {
		t.Fatalf("got %q, want %q", got, "1 2\n")
	}
}

func TestReturnNoneUnwinds(t *testing.T) {
	src := "class C:\n" +
		"  def f(self):\n" +
		"    return None\n" +
		"    print \"unreached\"\n" +
		"print C().f()\n"
	if got := runProgram(t, src); got != "None\n" {
		t.Fatalf("got %q, want %q", got, "None\n")
	}
}

func TestReturnDoesNotCrossMethodBoundary(t *testing.T) {
	src := "class Inner:\n" +
		"  def f(self):\n" +
		"    return 1\n" +
		"class Outer:\n" +
		"  def g(self):\n" +
		"    x = Inner().f()\n" +
		"    return x + 1\n" +
		"print Outer().g()\n"
	if got := runProgram(t, src); got != "2\n" {
		t.Fatalf("got %q, want %q", got, "2\n")
	}
}

func TestMethodFallsOffEndYieldsNone(t *testing.T) {
	src := "class C:\n" +
		"  def f(self):\n" +
		"    x = 1\n" +
		"print C().f()\n"
	if got := runProgram(t, src); got != "None\n" {
		t.Fatalf("got %q, want %q", got, "None\n")
	}
}

func TestPrintRendering(t *testing.T) {
	src := "print None, True, False, 42, \"raw string\"\n"
	if got := runProgram(t, src); got != "None True False 42 raw string\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintClassAndBareNewline(t *testing.T) {
	src := "class A:\n" +
		"  def f(self):\n" +
		"    return 1\n" +
		"print A\n" +
		"print\n"
	if got := runProgram(t, src); got != "Class A\n\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintInstanceWithoutStrHook(t *testing.T) {
	src := "class A:\n" +
		"  def f(self):\n" +
		"    return 1\n" +
		"print A()\n"
	got := runProgram(t, src)
	if !strings.HasPrefix(got, "<A object at ") || !strings.HasSuffix(got, ">\n") {
		t.Fatalf("expected address-like token, got %q", got)
	}
}

func TestStringifyPrimitive(t *testing.T) {
	src := "print str(None) + \"|\" + str(7) + \"|\" + str(True) + \"|\" + str(\"s\")\n"
	if got := runProgram(t, src); got != "None|7|True|s\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	src := "v = \"hello, world\"\n" +
		"print v\n"
	if got := runProgram(t, src); got != "hello, world\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedStrHook(t *testing.T) {
	// __str__ may return a non-string; the result renders like print would.
	src := "class N:\n" +
		"  def __init__(self, n):\n" +
		"    self.n = n\n" +
		"  def __str__(self):\n" +
		"    return self.n\n" +
		"print N(5), str(N(6))\n"
	if got := runProgram(t, src); got != "5 6\n" {
		t.Fatalf("got %q", got)
	}
}

func TestInterpreterReportsErrorKinds(t *testing.T) {
	runKind := func(src string) error {
		var buf bytes.Buffer
		return New(strings.NewReader(src), &buf).Execute()
	}

	var lexErr *LexerError
	if err := runKind("x = 'open\n"); !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexerError, got %T: %v", err, err)
	}
	var parseErr *ParseError
	if err := runKind("x = )\n"); !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	var rtErr *RuntimeError
	if err := runKind("print missing\n"); !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "\n", "# only a comment\n", "\n\n# c\n\n"} {
		if got := runProgram(t, src); got != "" {
			t.Fatalf("empty program produced output %q", got)
		}
	}
}

func TestConstructorArgumentsEvaluate(t *testing.T) {
	src := "class Pair:\n" +
		"  def __init__(self, a, b):\n" +
		"    self.a = a\n" +
		"    self.b = b\n" +
		"  def fst(self):\n" +
		"    return self.a\n" +
		"p = Pair(2 + 3, \"x\" + \"y\")\n" +
		"print p.fst(), p.b\n"
	if got := runProgram(t, src); got != "5 xy\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedInstances(t *testing.T) {
	src := "class Leaf:\n" +
		"  def __init__(self, v):\n" +
		"    self.v = v\n" +
		"class Node:\n" +
		"  def __init__(self, leaf):\n" +
		"    self.leaf = leaf\n" +
		"n = Node(Leaf(9))\n" +
		"print n.leaf.v\n" +
		"n.leaf.v = 10\n" +
		"print n.leaf.v\n"
	if got := runProgram(t, src); got != "9\n10\n" {
		t.Fatalf("got %q", got)
	}
}

func TestInheritedInitRuns(t *testing.T) {
	src := "class Base:\n" +
		"  def __init__(self, v):\n" +
		"    self.v = v\n" +
		"class Child(Base):\n" +
		"  def double(self):\n" +
		"    return self.v * 2\n" +
		"print Child(21).double()\n"
	if got := runProgram(t, src); got != "42\n" {
		t.Fatalf("got %q", got)
	}
}
