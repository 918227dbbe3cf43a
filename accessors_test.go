package ktv_test

import (
	"testing"

	"github.com/ichibown/ktv"
)

func TestScalarAccessorsRoundTrip(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")

	user.SetByte("age", 30)
	user.SetByte("gender", 1)

	if v, ok := user.GetByte("age"); !ok || v != 30 {
		t.Fatalf("GetByte(age) = (%d, %v), want (30, true)", v, ok)
	}
	if v, ok := user.GetByte("gender"); !ok || v != 1 {
		t.Fatalf("GetByte(gender) = (%d, %v), want (1, true)", v, ok)
	}
}

func TestLenientAccessorOnUnknownAlias(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")
	if v, ok := user.GetInt2("does_not_exist"); ok || v != 0 {
		t.Fatalf("GetInt2(unknown) = (%d, %v), want (0, false)", v, ok)
	}
}

func TestTypeGuardedSetterIsNoOp(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")

	// "age" is declared BYTE; SetInt4 must not find a matching field.
	user.SetInt4("age", 999)
	if v, ok := user.GetInt4("age"); ok || v != 0 {
		t.Fatalf("GetInt4(age) = (%d, %v), want (0, false)", v, ok)
	}
	if v, ok := user.GetByte("age"); ok || v != 0 {
		t.Fatalf("GetByte(age) = (%d, %v), want (0, false): slot must still be absent", v, ok)
	}
}

func TestSetRecordRejectsWrongModel(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")
	task, _ := ktv.NewRecord(sch, "task")

	// "job" expects model index 0 (job); task is model index 1.
	user.SetRecord("job", task)
	if _, ok := user.GetRecord("job"); ok {
		t.Fatalf("GetRecord(job) succeeded after assigning a mismatched model")
	}
}

func TestSetRecordAndGetRecordRoundTrip(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")
	job, _ := ktv.NewRecord(sch, "job")
	job.SetByte("type", 2)
	job.SetArray("title", ktv.NewCharArray("Product Manager"))

	user.SetRecord("job", job)

	got, ok := user.GetRecord("job")
	if !ok {
		t.Fatalf("GetRecord(job) not found")
	}
	if v, _ := got.GetByte("type"); v != 2 {
		t.Fatalf("job.type = %d, want 2", v)
	}
}

func TestGetArrayProbesArrayThenModelArray(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")
	user.SetArray("name", ktv.NewCharArray("Zhang Ji"))

	arr, ok := user.GetArray("name")
	if !ok || arr.String() != "Zhang Ji" {
		t.Fatalf("GetArray(name) = (%v, %v), want Zhang Ji", arr, ok)
	}

	task, _ := ktv.NewRecord(sch, "task")
	tasks := ktv.NewRecordArray(1, 1)
	tasks.SetRecord(0, task)
	user.SetArray("tasks", tasks)

	arr2, ok := user.GetArray("tasks")
	if !ok || arr2.Type() != tasks.Type() {
		t.Fatalf("GetArray(tasks) = (%v, %v), want the model_array", arr2, ok)
	}
}

func TestSetArrayRejectsMismatchedSubType(t *testing.T) {
	sch := testSchema(t)
	user, _ := ktv.NewRecord(sch, "user")
	// "name" is ARRAY(CHAR); assigning an INT4 array must be a no-op.
	user.SetArray("name", ktv.NewInt4Array([]int32{1, 2, 3}))
	if _, ok := user.GetArray("name"); ok {
		t.Fatalf("GetArray(name) succeeded after assigning a mismatched array kind")
	}
}
